package models

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	CreatedAt    time.Time  `json:"created_at"` // время регистрации
	UpdatedAt    *time.Time `json:"updated_at"` // nil пока запись не менялась
	ID           string     `json:"id"`         // UUID пользователя
	Username     string     `json:"username"`   // уникальный username
	Email        string     `json:"email"`      // уникальный email в нижнем регистре
	PasswordHash string     `json:"-"`          // bcrypt хеш, наружу не отдается
}

// Profile возвращает публичное представление пользователя без секретов
func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Username: u.Username}
}

// UserProfile минимальный набор полей пользователя для ответа /users/bio
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
