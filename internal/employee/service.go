package employee

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/role"
)

type RepositoryAPI interface {
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	GetByJobType(ctx context.Context, jobType string) ([]*employeeDatamodel.Employee, error)
	GetByDepartment(ctx context.Context, departmentName string) ([]*employeeDatamodel.Employee, error)
	// GetByUsername returns nil, nil when no employee matches.
	GetByUsername(ctx context.Context, username string) (*employeeDatamodel.Employee, error)
}

type UserChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

type RoleEnsurer interface {
	EnsureExists(ctx context.Context, name string) (*role.Role, error)
}

type DepartmentEnsurer interface {
	EnsureExists(ctx context.Context, name string) (*department.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	users       UserChecker
	roles       RoleEnsurer
	departments DepartmentEnsurer
	publisher   events.Publisher
	logger      *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	users UserChecker,
	roles RoleEnsurer,
	departments DepartmentEnsurer,
	publisher events.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		roles:       roles,
		departments: departments,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateEmployee stores the employee record for an existing user. The role
// and department are ensured first as separate steps; a failure afterwards
// leaves them in place.
func (s *Service) CreateEmployee(ctx context.Context, actor string, dto CreateEmployeeDTO) (*Employee, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(dto.Username))
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.NewValidationError("User not found. Create a user ID first.", internal.ErrCodeUserNotFound)
	}

	rl, err := s.roles.EnsureExists(ctx, dto.RoleName)
	if err != nil {
		return nil, err
	}
	dept, err := s.departments.EnsureExists(ctx, dto.DepartmentName)
	if err != nil {
		return nil, err
	}

	data := ToDataModel(&Employee{
		Username:       username,
		Address:        dto.Address,
		JobType:        JobType(dto.JobType),
		DepartmentName: dept.Name,
		RoleName:       rl.Name,
	})
	if err := s.repo.Create(ctx, data); err != nil {
		if errors.Is(err, internal.ErrDuplicateKey) {
			return nil, internal.NewConflictError("Employee already exists", internal.ErrCodeEmployeeExists)
		}
		s.logger.ErrorContext(ctx, "failed to create employee", "username", username, "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.InfoContext(ctx, "employee created",
		"username", data.Username, "department", data.DepartmentName, "role", data.RoleName, "actor", actor)
	events.Emit(ctx, s.publisher, events.NewEmployeeCreatedEvent(actor, data.Username, data.DepartmentName, data.RoleName))
	return FromDataModel(data), nil
}

// ListByJobType matches the job type exactly; it is not case-folded.
func (s *Service) ListByJobType(ctx context.Context, jobType string) ([]*Employee, error) {
	jobType = strings.TrimSpace(jobType)
	if jobType == "" {
		return nil, internal.NewValidationError("Missing jobType in request body", internal.ErrCodeMissingField)
	}
	if !JobType(jobType).Valid() {
		return nil, internal.NewValidationError("Invalid `jobType` property in request body", internal.ErrCodeInvalidJobType)
	}

	employees, err := s.repo.GetByJobType(ctx, jobType)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list employees by job type", "job_type", jobType, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return fromDataModels(employees), nil
}

func (s *Service) ListByDepartment(ctx context.Context, departmentName string) ([]*Employee, error) {
	departmentName = auth.NormalizeRoleName(departmentName)
	if departmentName == "" {
		return nil, internal.NewValidationError("Missing Department Name in request body", internal.ErrCodeMissingField)
	}

	employees, err := s.repo.GetByDepartment(ctx, departmentName)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list employees by department", "department", departmentName, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return fromDataModels(employees), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*Employee, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, internal.NewValidationError("Missing username in request body", internal.ErrCodeMissingField)
	}

	e, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get employee", "username", username, "error", err)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	if e == nil {
		return nil, internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
	}
	return FromDataModel(e), nil
}
