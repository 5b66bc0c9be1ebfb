package department

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error)
	GetByName(ctx context.Context, name string) (*departmentDatamodel.Department, error)
	EnsureExists(ctx context.Context, name string) (dept *departmentDatamodel.Department, created bool, err error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	dataDepartments, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get departments from repository", "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}

	responses := make([]DepartmentResponse, 0, len(dataDepartments))
	for _, d := range dataDepartments {
		responses = append(responses, FromDataModel(d).ToResponse())
	}

	s.logger.DebugContext(ctx, "retrieved departments", "count", len(responses))
	return responses, nil
}

// EnsureExists returns the department, creating it on first reference.
// Names are stored upper-cased.
func (s *Service) EnsureExists(ctx context.Context, name string) (*Department, error) {
	name = auth.NormalizeRoleName(name)
	if name == "" {
		return nil, internal.NewValidationFieldError("departmentName", "departmentName is required", internal.ErrCodeMissingField)
	}

	dataDepartment, created, err := s.repo.EnsureExists(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to ensure department", "department", name, "error", err)
		return nil, internal.NewInternalError("failed to ensure department", err)
	}
	if created {
		s.logger.InfoContext(ctx, "department created on first reference", "department", name)
	}
	return FromDataModel(dataDepartment), nil
}
