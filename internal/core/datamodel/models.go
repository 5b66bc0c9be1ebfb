package datamodel

import (
	"errors"
	"strings"

	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// All lists every persisted model in dependency order, for gorm AutoMigrate
// in tests and local sqlite runs.
func All() []interface{} {
	return []interface{}{
		&roleDatamodel.Role{},
		&roleDatamodel.RolePermission{},
		&userDatamodel.User{},
		&departmentDatamodel.Department{},
		&employeeDatamodel.Employee{},
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation from
// gorm (with TranslateError), pgx, or the sqlite driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
