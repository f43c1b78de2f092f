package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/models"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
)

type contextKey string

const adminEmailKey contextKey = "adminEmail"

// AdminChecker resolves an email to an approved admin. Satisfied by
// services.AdminService.
type AdminChecker interface {
	AdminByEmail(ctx context.Context, email string) (models.AdminUser, error)
}

// AdminAuth validates the bearer token against the auth provider and
// then cross-checks the identity against the approved-admin set.
// Missing or invalid token gives 401, a valid identity that is not an
// approved admin gives 403.
func AdminAuth(provider auth.Provider, admins AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			identity, err := provider.Verify(r.Context(), tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			admin, err := admins.AdminByEmail(r.Context(), identity.Email)
			if errors.Is(err, repositories.ErrNotFound) {
				logging.Logger.Warnf("Event ID: AUTH_FORBIDDEN, Description: %s is authenticated but not an approved admin", identity.Email)
				http.Error(w, "access forbidden: not an approved admin", http.StatusForbidden)
				return
			}
			if err != nil {
				logging.Logger.Errorf("Event ID: AUTH_LOOKUP_FAILED, Description: Admin lookup for %s failed: %v", identity.Email, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, admin.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmail returns the approved-admin email AdminAuth stored on the
// request context, or "" outside the protected routes.
func AdminEmail(r *http.Request) string {
	email, _ := r.Context().Value(adminEmailKey).(string)
	return email
}
