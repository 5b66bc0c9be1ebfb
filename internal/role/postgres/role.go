package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
	"github.com/frahmantamala/employee-management/internal/role"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll(ctx context.Context) ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*roleDatamodel.Role, error) {
	var rl roleDatamodel.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Where("name = ?", name).First(&rl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

// Create inserts the role and its permission rows together.
func (r *RoleRepository) Create(ctx context.Context, rl *roleDatamodel.Role) error {
	err := r.db.WithContext(ctx).Create(rl).Error
	if datamodel.IsDuplicateKey(err) {
		return fmt.Errorf("role %q: %w", rl.Name, internal.ErrDuplicateKey)
	}
	return err
}

func (r *RoleRepository) EnsureExists(ctx context.Context, name string) (*roleDatamodel.Role, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	rl := &roleDatamodel.Role{Name: name}
	err = r.db.WithContext(ctx).Omit(clause.Associations).Create(rl).Error
	if err == nil {
		return rl, true, nil
	}
	if !datamodel.IsDuplicateKey(err) {
		return nil, false, err
	}

	// lost a race with a concurrent insert of the same name
	existing, err = r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("role %q vanished after duplicate insert", name)
	}
	return existing, false, nil
}

// ReplacePermissions swaps the whole permission set in one transaction.
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID int64, permissions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		if len(permissions) > 0 {
			rows := make([]roleDatamodel.RolePermission, len(permissions))
			for i, p := range permissions {
				rows[i] = roleDatamodel.RolePermission{RoleID: roleID, Permission: p}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Model(&roleDatamodel.Role{}).Where("id = ?", roleID).Update("updated_at", time.Now()).Error
	})
}
