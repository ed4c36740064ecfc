package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User публичное представление пользователя. Хеш пароля не передается.
type User struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message string `json:"message"` // сообщение об успешной регистрации
	Data    User   `json:"data"`    // созданный пользователь
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токеном доступа.
// IssuedAt и ExpiresAt совпадают с iat и exp внутри токена.
type TokenResponse struct {
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	Token     string    `json:"token"`
}

// BioResponse представляет ответ /users/bio
type BioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string   `json:"error"`             // описание ошибки
	Message string   `json:"message,omitempty"` // дополнительное сообщение
	Errors  []string `json:"errors,omitempty"`  // причины ошибки валидации
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
