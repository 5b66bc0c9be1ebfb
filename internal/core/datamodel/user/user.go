package user

import (
	"time"

	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
)

type User struct {
	ID           int64               `gorm:"primaryKey"`
	Username     string              `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string              `gorm:"column:password_hash;not null"`
	FirstName    string              `gorm:"column:first_name"`
	LastName     string              `gorm:"column:last_name"`
	Email        string              `gorm:"column:email"`
	PhoneNumber  string              `gorm:"column:phone_number"`
	DateOfBirth  *time.Time          `gorm:"column:date_of_birth"`
	RoleName     string              `gorm:"column:role_name;not null;index"`
	Role         *roleDatamodel.Role `gorm:"foreignKey:RoleName;references:Name"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
