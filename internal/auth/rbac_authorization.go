package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
)

// RBACAuthorization gates routes on a single permission of the principal's
// role. It must run after AuthMiddleware.
type RBACAuthorization struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(baseHandler *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: baseHandler,
		logger:      baseHandler.Logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			ra.logger.WarnContext(r.Context(), "authorization check failed: principal not found in context")
			ra.HandleServiceError(w, r, internal.ErrInvalidToken)
			return
		}

		if !principal.Can(permission) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"username", principal.Username,
				"role", principal.Role.Name,
				"required_permission", permission)
			ra.HandleServiceError(w, r, internal.ErrInsufficientPermission)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}
