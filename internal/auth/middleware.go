package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/apperrors"
	"github.com/KromaEnergia/api-crm/internal/models"
	"github.com/KromaEnergia/api-crm/internal/utils"
)

type ctxKey string

const PrincipalCtxKey ctxKey = "principal"

// Principal é o chamador autenticado.
type Principal struct {
	UserID uint
	Email  string
	Role   models.Role
}

// Middleware exige "Authorization: Bearer <token>" válido.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
				return
			}
			claims, err := issuer.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				utils.WriteError(w, apperrors.Unauthorized("Missing or invalid token"))
				return
			}
			p := Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// FromContext devolve o chamador injetado pelo Middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(Principal)
	return p, ok
}
