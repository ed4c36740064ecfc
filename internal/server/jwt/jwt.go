// Package jwt выпускает и проверяет сессионные токены (HS256).
// Сервер не хранит выданные токены: валидность определяется только
// подписью и временем истечения, отзыв токена до exp невозможен.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL время жизни токена по умолчанию
const DefaultTTL = 3 * time.Hour

var (
	// ErrUnauthorized общая ошибка аутентификации, от нее наследуются остальные
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken подпись неверна, токен поврежден или подписан другим алгоритмом
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	// ErrTokenExpired текущее время позже exp из токена
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)
	// ErrEmptySecret ключ подписи не задан
	ErrEmptySecret = errors.New("jwt secret cannot be empty")
)

// Claims набор claims сессионного токена: user_id, iat, exp
type Claims struct {
	UserID string `json:"user_id"`
	gojwt.RegisteredClaims
}

// Token выпущенный токен вместе с моментами выпуска и истечения,
// которые записаны внутрь токена
type Token struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Value     string
}

// Issuer выпускает токены
type Issuer interface {
	Issue(userID string) (Token, error)
}

// Verifier проверяет токены и возвращает user id
type Verifier interface {
	Verify(token string) (string, error)
}

// Service реализует Issuer и Verifier
type Service struct {
	now    func() time.Time
	parser *gojwt.Parser
	secret []byte
	ttl    time.Duration
}

var (
	_ Issuer   = (*Service)(nil)
	_ Verifier = (*Service)(nil)
)

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник текущего времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создает сервис токенов. ttl <= 0 означает DefaultTTL.
func NewService(secret []byte, ttl time.Duration, opts ...Option) (*Service, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = gojwt.NewParser(
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// TTL возвращает время жизни выпускаемых токенов
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue выпускает токен для пользователя. exp вычисляется один раз
// как iat + TTL и записывается в токен.
func (s *Service) Issue(userID string) (Token, error) {
	if userID == "" {
		return Token{}, fmt.Errorf("user id cannot be empty")
	}

	// NumericDate хранит секунды, поэтому округляем заранее,
	// чтобы возвращаемые значения совпадали с записанными в токен
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}

	value, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{
		Value:     value,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify проверяет подпись и срок действия токена и возвращает user id.
// Ошибки: ErrTokenExpired, ErrInvalidToken (обе оборачивают ErrUnauthorized).
func (s *Service) Verify(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return claims.UserID, nil
}
