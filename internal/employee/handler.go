package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/transport"
)

type ServiceAPI interface {
	CreateEmployee(ctx context.Context, actor string, dto CreateEmployeeDTO) (*Employee, error)
	ListByJobType(ctx context.Context, jobType string) ([]*Employee, error)
	ListByDepartment(ctx context.Context, departmentName string) ([]*Employee, error)
	GetByUsername(ctx context.Context, username string) (*Employee, error)
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

// AddEmployee handles POST /api/employee/addEmployee
func (h *Handler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	e, err := h.Service.CreateEmployee(r.Context(), auth.UsernameFromContext(r.Context()), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreateEmployeeResponse{
		Message:     "Employee created successfully",
		NewEmployee: e,
	})
}

func (h *Handler) EmployeesByJobType(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListByJobType(r.Context(), h.LookupParam(r, "jobType"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeesByJobTypeResponse{EmployeesByJobType: employees})
}

func (h *Handler) EmployeesByDepartment(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListByDepartment(r.Context(), h.LookupParam(r, "departmentName"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeesByDepartmentResponse{EmployeesByDepartment: employees})
}

func (h *Handler) EmployeeByUsername(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetByUsername(r.Context(), h.LookupParam(r, "username"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeeByUsernameResponse{EmployeeByUsername: e})
}
