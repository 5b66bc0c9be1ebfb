package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/role"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	GetByRoleName(ctx context.Context, roleName string) ([]*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	// DeleteByID reports false when no row matched.
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// RoleEnsurer is the role service's find-or-create step.
type RoleEnsurer interface {
	EnsureExists(ctx context.Context, name string) (*role.Role, error)
}

type Service struct {
	repo      RepositoryAPI
	roles     RoleEnsurer
	hasher    *auth.PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, roles RoleEnsurer, hasher *auth.PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		roles:     roles,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// parseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, internal.NewValidationFieldError(field, field+" must be a date (YYYY-MM-DD)", internal.ErrCodeValidationFailed)
}

func (s *Service) CreateUser(ctx context.Context, actor string, dto CreateUserDTO) (*User, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	dob, err := parseDate("dateOfBirth", dto.DateOfBirth)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	rl, err := s.roles.EnsureExists(ctx, dto.RoleName)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     normalizeUsername(dto.Username),
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		DateOfBirth:  dob,
		RoleName:     rl.Name,
	}

	data := ToDataModel(u)
	if err := s.repo.Create(ctx, data); err != nil {
		if errors.Is(err, internal.ErrDuplicateKey) {
			return nil, internal.NewConflictError("User already exists", internal.ErrCodeUserExists)
		}
		s.logger.ErrorContext(ctx, "failed to create user", "username", u.Username, "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.InfoContext(ctx, "user created", "username", data.Username, "role", data.RoleName, "actor", actor)
	events.Emit(ctx, s.publisher, events.NewUserCreatedEvent(actor, data.Username, data.RoleName))
	return FromDataModel(data), nil
}

// UpdateUser applies profile changes to the user named in dto. Only an ADMIN
// caller may change the password or role; for anyone else those fields are
// ignored.
func (s *Service) UpdateUser(ctx context.Context, caller *auth.Principal, dto UpdateUserDTO) (*User, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	var actor string
	if caller != nil {
		actor = caller.Username
	}

	username := normalizeUsername(dto.Username)
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if existing == nil {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	var changed []string
	if dto.FirstName != nil {
		existing.FirstName = *dto.FirstName
		changed = append(changed, "firstName")
	}
	if dto.LastName != nil {
		existing.LastName = *dto.LastName
		changed = append(changed, "lastName")
	}
	if dto.Email != nil {
		existing.Email = *dto.Email
		changed = append(changed, "email")
	}
	if dto.PhoneNumber != nil {
		existing.PhoneNumber = *dto.PhoneNumber
		changed = append(changed, "phoneNumber")
	}
	if dto.DateOfBirth != nil {
		dob, err := parseDate("dateOfBirth", *dto.DateOfBirth)
		if err != nil {
			return nil, err
		}
		existing.DateOfBirth = dob
		changed = append(changed, "dateOfBirth")
	}

	if caller.IsAdmin() {
		if dto.Password != nil {
			hash, err := s.hasher.Hash(*dto.Password)
			if err != nil {
				return nil, err
			}
			existing.PasswordHash = hash
			changed = append(changed, "password")
		}
		if dto.RoleName != nil {
			rl, err := s.roles.EnsureExists(ctx, *dto.RoleName)
			if err != nil {
				return nil, err
			}
			existing.RoleName = rl.Name
			changed = append(changed, "roleName")
		}
	} else if dto.Password != nil || dto.RoleName != nil {
		s.logger.WarnContext(ctx, "ignoring privileged fields from non-admin caller",
			"caller", actor, "target", username)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "failed to update user", "username", username, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.InfoContext(ctx, "user updated", "username", username, "fields", changed, "actor", actor)
	events.Emit(ctx, s.publisher, events.NewUserUpdatedEvent(actor, username, changed))
	return FromDataModel(existing), nil
}

func (s *Service) DeleteUser(ctx context.Context, actor string, id int64) error {
	if id <= 0 {
		return internal.NewValidationError("Invalid user id", internal.ErrCodeInvalidID)
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to delete user", err)
	}
	if !deleted {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "actor", actor)
	events.Emit(ctx, s.publisher, events.NewUserDeletedEvent(actor, id))
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return fromDataModels(users), nil
}

func (s *Service) ListUsersByRole(ctx context.Context, roleName string) ([]*User, error) {
	roleName = auth.NormalizeRoleName(roleName)
	if roleName == "" {
		return nil, internal.NewValidationError("Missing roleName in request body", internal.ErrCodeMissingField)
	}

	users, err := s.repo.GetByRoleName(ctx, roleName)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users by role", "role", roleName, "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return fromDataModels(users), nil
}

// Exists reports whether a user with username is stored.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	u, err := s.repo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return false, internal.NewInternalError("failed to load user", err)
	}
	return u != nil, nil
}
