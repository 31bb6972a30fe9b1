package web

import "github.com/EgorLis/equip-catalog/internal/domain"

type AuthDeps struct {
	Tokens domain.TokenManager
}
