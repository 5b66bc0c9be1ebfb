package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/employee-management/internal/auth"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/role"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) auth.CredentialStore {
	return &CredentialRepository{
		db: db,
	}
}

// FindByUsername loads the user with its role and the role's permissions in
// one go. A user whose role row is missing gets a role with no permissions.
func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Role.Permissions").
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	authRole := &auth.Role{Name: u.RoleName, Permissions: auth.NewPermissionSet()}
	if u.Role != nil {
		authRole = role.FromDataModel(u.Role).ToAuthRole()
	}

	return &auth.Credential{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         authRole,
	}, nil
}
