package mw

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/EgorLis/equip-catalog/internal/domain"
)

const claimsKey ctxKey = "auth_claims"

type AuthDeps struct {
	Tokens domain.TokenManager
}

// RequireAuth пускает дальше только запросы с валидным bearer-токеном.
// Нет токена — 401; токен есть, но битый/просроченный — 400.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrCodeUnauth, "unauthorized")
			return
		}
		claims, err := deps.Tokens.Parse(r.Context(), raw)
		if err != nil {
			writeAuthError(w, http.StatusBadRequest, domain.ErrCodeBadToken, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromCtx(ctx context.Context) (domain.TokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(domain.TokenClaims)
	return c, ok
}

func writeAuthError(w http.ResponseWriter, status, code int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"code":%d,"text":%q}}`, code, text)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
