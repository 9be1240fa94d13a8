package auth

import (
	"net/http"

	"github.com/satriajanaka/workforce-management/internal/transport"
	"github.com/satriajanaka/workforce-management/pkg/logger"
)

// Authorizer gates routes on the caller's role. Admins pass every check.
type Authorizer struct {
	base *transport.BaseHandler
}

func NewAuthorizer() *Authorizer {
	return &Authorizer{base: transport.NewBaseHandler(logger.L())}
}

// RequireRole allows the request through when the authenticated user holds
// one of the given roles. It must sit behind the auth middleware.
func (a *Authorizer) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				a.base.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if u.Role != RoleAdmin && !u.HasRole(roles...) {
				a.base.Logger.Warn("role check failed", "user_id", u.ID, "role", u.Role, "required", roles)
				a.base.WriteError(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager gates workforce mutations: creating employees and projects,
// managing allocations, approving users.
func (a *Authorizer) RequireManager() func(http.Handler) http.Handler {
	return a.RequireRole(RoleManager)
}

// RequireAdmin gates account administration.
func (a *Authorizer) RequireAdmin() func(http.Handler) http.Handler {
	return a.RequireRole(RoleAdmin)
}
