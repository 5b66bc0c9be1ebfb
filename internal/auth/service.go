package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// Credential is what the store returns for a username: the stored digest and
// the user's current role with its permission set.
type Credential struct {
	UserID       int64
	Username     string
	PasswordHash string
	Role         *Role
}

// CredentialStore returns nil, nil when the username is unknown.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (string, error)
	VerifyToken(bearer string) (string, error)
	ResolvePrincipal(ctx context.Context, username string) (*Principal, error)
}

type Service struct {
	store  CredentialStore
	hasher *PasswordHasher
	tokens *TokenService
	logger *slog.Logger
}

func NewService(store CredentialStore, hasher *PasswordHasher, tokens *TokenService, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the credentials and returns a "Bearer <token>" string. Unknown
// users and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (string, error) {
	if err := validation.Struct(dto); err != nil {
		return "", err
	}

	username := strings.ToLower(strings.TrimSpace(dto.Username))
	cred, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "login: credential lookup failed", "username", username, "error", err)
		return "", internal.NewInternalError("failed to look up credentials", err)
	}
	if cred == nil || !s.hasher.Verify(dto.Password, cred.PasswordHash) {
		s.logger.WarnContext(ctx, "login: invalid credentials", "username", username)
		return "", internal.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(cred.Username)
	if err != nil {
		return "", internal.NewInternalError("failed to issue token", err)
	}

	s.logger.InfoContext(ctx, "login: token issued", "username", cred.Username)
	return token, nil
}

func (s *Service) VerifyToken(bearer string) (string, error) {
	return s.tokens.Verify(bearer)
}

// ResolvePrincipal loads the user and its role fresh from the store, so a
// permission change applies to the next request. Unknown users yield
// ErrInvalidToken.
func (s *Service) ResolvePrincipal(ctx context.Context, username string) (*Principal, error) {
	cred, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, internal.ErrInvalidToken
	}

	role := cred.Role
	if role == nil {
		role = &Role{Permissions: NewPermissionSet()}
	}
	return &Principal{
		UserID:   cred.UserID,
		Username: cred.Username,
		Role:     role,
	}, nil
}
