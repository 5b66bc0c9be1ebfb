package auth

import (
	"errors"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Login responds with the bare JSON string "Bearer <token>".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	token, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// Logout has nothing to revoke: tokens are stateless and expire on their own.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// AuthMiddleware verifies the bearer token, loads the caller's user and role
// and stores the resulting Principal in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.From(ctx)

		bearer := h.ExtractBearerFromHeader(r)
		if bearer == "" {
			log.WarnContext(ctx, "auth middleware: missing authorization token", "path", r.URL.Path)
			h.HandleServiceError(w, r, internal.ErrTokenMissing)
			return
		}

		username, err := h.Service.VerifyToken(bearer)
		if err != nil {
			log.WarnContext(ctx, "auth middleware: token rejected", "reason", tokenFailureReason(err))
			h.HandleServiceError(w, r, internal.ErrInvalidToken)
			return
		}

		principal, err := h.Service.ResolvePrincipal(ctx, username)
		if err != nil {
			if errors.Is(err, internal.ErrInvalidToken) {
				log.WarnContext(ctx, "auth middleware: token subject not found", "username", username)
			} else {
				log.ErrorContext(ctx, "auth middleware: failed to load principal", "username", username, "error", err)
			}
			h.HandleServiceError(w, r, internal.ErrInvalidToken)
			return
		}

		ctx = logger.With(ctx, "username", principal.Username, "role", principal.Role.Name)
		ctx = ContextWithPrincipal(ctx, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
