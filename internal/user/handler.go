package user

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateUser(ctx context.Context, actor string, dto CreateUserDTO) (*User, error)
	UpdateUser(ctx context.Context, caller *auth.Principal, dto UpdateUserDTO) (*User, error)
	DeleteUser(ctx context.Context, actor string, id int64) error
	ListUsers(ctx context.Context) ([]*User, error)
	ListUsersByRole(ctx context.Context, roleName string) ([]*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreateUser handles POST /api/user/createUser
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.CreateUser(r.Context(), auth.UsernameFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, UserMessageResponse{Message: "User created successfully", User: u})
}

// UpdateUser handles PUT /api/user/updateUser
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	var dto UpdateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	u, err := h.Service.UpdateUser(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, UserMessageResponse{Message: "User updated successfully", User: u})
}

// DeleteUser handles DELETE /api/user/deleteUser/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleServiceError(w, r, internal.NewValidationError("Invalid user id", internal.ErrCodeInvalidID))
		return
	}

	if err := h.Service.DeleteUser(r.Context(), auth.UsernameFromContext(r.Context()), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// GetAllUsers handles GET /api/user/getAllUsers
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// UsersByRoleName handles GET /api/user/usersByRoleName
func (h *Handler) UsersByRoleName(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsersByRole(r.Context(), h.LookupParam(r, "roleName"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersByRoleResponse{EmployeesByRoleName: users})
}
