package rest

import (
	"log/slog"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	authPostgres "github.com/frahmantamala/employee-management/internal/auth/postgres"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/department"
	departmentPostgres "github.com/frahmantamala/employee-management/internal/department/postgres"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/role"
	rolePostgres "github.com/frahmantamala/employee-management/internal/role/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/user"
	userPostgres "github.com/frahmantamala/employee-management/internal/user/postgres"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Services struct {
	Auth       *auth.Service
	User       *user.Service
	Role       *role.Service
	Department *department.Service
	Employee   *employee.Service
}

// BuildServices wires repositories into services. gdb and sdb share one
// connection pool.
func BuildServices(gdb *gorm.DB, sdb *sqlx.DB, security internal.SecurityConfig, publisher events.Publisher, logger *slog.Logger) *Services {
	hasher := auth.NewPasswordHasher(security.BCryptCost)
	tokens := auth.NewTokenService(security.JWTSecret)

	roleService := role.NewService(rolePostgres.NewRoleRepository(gdb), publisher, logger)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(gdb), logger)
	userService := user.NewService(userPostgres.NewUserRepository(gdb), roleService, hasher, publisher, logger)

	return &Services{
		Auth:       auth.NewService(authPostgres.NewCredentialRepository(gdb), hasher, tokens, logger),
		User:       userService,
		Role:       roleService,
		Department: departmentService,
		Employee: employee.NewService(
			employeePostgres.NewEmployeeRepository(sdb),
			userService,
			roleService,
			departmentService,
			publisher,
			logger,
		),
	}
}

func BuildHandlers(svc *Services, sdb *sqlx.DB, logger *slog.Logger) Handlers {
	base := transport.NewBaseHandler(logger)

	return Handlers{
		Auth:       auth.NewHandler(base, svc.Auth),
		RBAC:       auth.NewRBACAuthorization(base),
		User:       user.NewHandler(base, svc.User),
		Role:       role.NewHandler(base, svc.Role),
		Department: department.NewHandler(base, svc.Department),
		Employee:   employee.NewHandler(base, svc.Employee),
		Health:     NewHealthHandler(sdb),
	}
}
