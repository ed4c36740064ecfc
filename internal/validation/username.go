package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxUsernameLen максимальная длина username в символах
	MaxUsernameLen = 64
	// MaxEmailLen максимальная длина email (RFC 5321)
	MaxEmailLen = 254
)

// ValidateUsername проверяет, что username непустой, не длиннее MaxUsernameLen
// символов и не содержит пробельных символов
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return fmt.Errorf("username cannot contain whitespace")
	}

	return nil
}

// NormalizeEmail проверяет синтаксис email и возвращает адрес в нижнем регистре.
// Отображаемое имя ("Alice <a@x.com>") не допускается.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return "", fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", fmt.Errorf("email is not a valid address")
	}

	return strings.ToLower(addr.Address), nil
}
