package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLen минимальная длина пароля в символах
const MinPasswordLen = 8

// MaxPasswordBytes предел bcrypt: более длинный пароль не хешируется
const MaxPasswordBytes = 72

// Сообщения о нарушениях парольной политики
const (
	ReasonPasswordLength = "length min 8"
	ReasonNoLowercase    = "number of lowercase min 1"
	ReasonNoUppercase    = "number of uppercase min 1"
	ReasonNoDigit        = "number of digit min 1"
	ReasonNoPunctuation  = "number of punctuation min 1"

	ReasonPasswordTooLong = "length max 72 bytes"
)

// ValidatePassword проверяет пароль по всем правилам сразу и возвращает
// список нарушений. Пустой список означает, что пароль подходит.
func ValidatePassword(password string) []string {
	var lower, upper, digit, punct bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			punct = true
		}
	}

	var reasons []string
	if utf8.RuneCountInString(password) < MinPasswordLen {
		reasons = append(reasons, ReasonPasswordLength)
	}
	if !lower {
		reasons = append(reasons, ReasonNoLowercase)
	}
	if !upper {
		reasons = append(reasons, ReasonNoUppercase)
	}
	if !digit {
		reasons = append(reasons, ReasonNoDigit)
	}
	if !punct {
		reasons = append(reasons, ReasonNoPunctuation)
	}

	return reasons
}

// CheckPassword оборачивает нарушения парольной политики в *Error
func CheckPassword(password string) error {
	if reasons := ValidatePassword(password); len(reasons) > 0 {
		return &Error{Reasons: prefixed("password", reasons)}
	}
	return nil
}

// CheckPasswordSize проверяет, что пароль помещается в bcrypt.
// В парольную политику это правило не входит.
func CheckPasswordSize(password string) error {
	if len(password) > MaxPasswordBytes {
		return &Error{Reasons: prefixed("password", []string{ReasonPasswordTooLong})}
	}
	return nil
}

func prefixed(field string, reasons []string) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = fmt.Sprintf("%s: %s", field, r)
	}
	return out
}
