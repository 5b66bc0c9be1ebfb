package role

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
	"github.com/frahmantamala/employee-management/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*roleDatamodel.Role, error)
	GetByName(ctx context.Context, name string) (*roleDatamodel.Role, error)
	// EnsureExists returns the role named name, creating it with no
	// permissions when absent. created reports whether this call inserted it.
	EnsureExists(ctx context.Context, name string) (role *roleDatamodel.Role, created bool, err error)
	Create(ctx context.Context, role *roleDatamodel.Role) error
	ReplacePermissions(ctx context.Context, roleID int64, permissions []string) error
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	dataRoles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get roles from repository", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	responses := make([]RoleResponse, 0, len(dataRoles))
	for _, r := range dataRoles {
		responses = append(responses, FromDataModel(r).ToResponse())
	}
	return responses, nil
}

// EnsureExists is the find-or-create step used when a user or employee names
// a role that may not exist yet.
func (s *Service) EnsureExists(ctx context.Context, name string) (*Role, error) {
	name = auth.NormalizeRoleName(name)
	if name == "" {
		return nil, internal.NewValidationFieldError("roleName", "roleName is required", internal.ErrCodeMissingField)
	}

	dataRole, created, err := s.repo.EnsureExists(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to ensure role", "role", name, "error", err)
		return nil, internal.NewInternalError("failed to ensure role", err)
	}
	if created {
		s.logger.InfoContext(ctx, "role created on first reference", "role", name)
	}
	return FromDataModel(dataRole), nil
}

// CreateIfAbsent stores a role with the given permissions unless a role of
// that name already exists. An existing role is left untouched so that later
// permission updates survive re-seeding.
func (s *Service) CreateIfAbsent(ctx context.Context, name string, permissions []auth.Permission) (bool, error) {
	name = auth.NormalizeRoleName(name)
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return false, internal.NewInternalError("failed to load role", err)
	}
	if existing != nil {
		return false, nil
	}

	rl := &roleDatamodel.Role{Name: name}
	for _, p := range auth.NewPermissionSet(permissions...).Sorted() {
		rl.Permissions = append(rl.Permissions, roleDatamodel.RolePermission{Permission: p.String()})
	}
	if err := s.repo.Create(ctx, rl); err != nil {
		if errors.Is(err, internal.ErrDuplicateKey) {
			return false, nil
		}
		return false, internal.NewInternalError("failed to create role", err)
	}

	s.logger.InfoContext(ctx, "role created", "role", name, "permissions", len(rl.Permissions))
	return true, nil
}

// UpdatePermissions replaces the permission set of an existing role.
func (s *Service) UpdatePermissions(ctx context.Context, actor string, dto UpdateRoleDTO) (*RoleResponse, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	set, invalid := auth.ParsePermissionSet(dto.Permissions)
	if len(invalid) > 0 {
		return nil, internal.NewValidationFieldError("permissions",
			fmt.Sprintf("unknown permission(s): %s", strings.Join(invalid, ", ")),
			internal.ErrCodeInvalidPermission)
	}

	name := auth.NormalizeRoleName(dto.RoleName)
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if existing == nil {
		return nil, internal.NewNotFoundError("Role not found", internal.ErrCodeRoleNotFound)
	}

	perms := set.Sorted()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}

	if err := s.repo.ReplacePermissions(ctx, existing.ID, names); err != nil {
		s.logger.ErrorContext(ctx, "failed to replace role permissions", "role", name, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}

	updated, err := s.repo.GetByName(ctx, name)
	if err != nil || updated == nil {
		return nil, internal.NewInternalError("failed to reload role", err)
	}

	s.logger.InfoContext(ctx, "role permissions updated", "role", name, "permissions", names, "actor", actor)
	events.Emit(ctx, s.publisher, events.NewRolePermissionsUpdatedEvent(actor, name, names))

	resp := FromDataModel(updated).ToResponse()
	return &resp, nil
}
