package role

import "time"

type Role struct {
	ID          int64            `gorm:"primaryKey"`
	Name        string           `gorm:"column:name;uniqueIndex;not null"`
	Permissions []RolePermission `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// RolePermission is one (role, permission) pair; the composite key keeps the
// set free of duplicates.
type RolePermission struct {
	RoleID     int64     `gorm:"column:role_id;primaryKey;autoIncrement:false"`
	Permission string    `gorm:"column:permission;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Permission)
	}
	return names
}
