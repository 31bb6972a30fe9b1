package domain

import (
	"context"
	"time"
)

type Token = string

type TokenClaims struct {
	JTI       string // уникальный id токена
	Subject   string // идентификатор клиента
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Проверка bearer-токенов. Выпуск токенов клиентам — забота внешней системы,
// Issue оставлен для операторских утилит и тестов.
type TokenManager interface {
	Issue(ctx context.Context, subject string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}
