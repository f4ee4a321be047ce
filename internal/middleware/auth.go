package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/atmnet/backend/internal/models"
	"github.com/atmnet/backend/internal/services"
)

type contextKey string

const principalKey contextKey = "principal"

// Authorizer resolves a bearer token to the caller behind it.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*services.Principal, error)
}

// AuthMiddleware requires a valid bearer token and puts the freshly loaded
// principal into the request context.
func AuthMiddleware(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from Authorization header
			token := ""
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					services.SendErrorResponse(w, "Invalid authorization header format", models.CodeInvalidToken, http.StatusUnauthorized, nil)
					return
				}
				token = parts[1]
			}

			principal, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				code, message, status := models.CodeInvalidToken, "Invalid token", http.StatusUnauthorized
				var e *services.Error
				if errors.As(err, &e) {
					code, message = e.Code, e.Message
					if code == models.CodeDatabaseError || code == models.CodeSystemError {
						status = http.StatusInternalServerError
					}
				}
				services.SendErrorResponse(w, message, code, status, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, principal *services.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFrom returns the caller stored by AuthMiddleware.
func PrincipalFrom(ctx context.Context) (*services.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*services.Principal)
	return principal, ok && principal != nil
}
