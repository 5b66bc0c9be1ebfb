package rest

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/department"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/role"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/frahmantamala/employee-management/internal/transport/swagger"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	User       *user.Handler
	Role       *role.Handler
	Department *department.Handler
	Employee   *employee.Handler
	Health     *HealthHandler
}

type RouterConfig struct {
	LoginRateLimit int
	Production     bool
}

// NewRouter validates the embedded OpenAPI document and mounts every route.
func NewRouter(ctx context.Context, h Handlers, cfg RouterConfig, logger *slog.Logger) (*chi.Mux, error) {
	if _, err := swagger.Load(ctx); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterAllRoutes(router, h, cfg, logger)
	return router, nil
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, cfg RouterConfig, logger *slog.Logger) {
	metrics := middleware.NewMetrics()

	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(metrics.Middleware)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.SecurityHeaders(logger, cfg.Production))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Handle("/metrics", metrics.Handler())
	router.Handle("/openapi.yml", swagger.DocumentHandler())
	router.Handle("/swagger/*", swagger.Handler())

	rbac := h.RBAC

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.Health.Ping)
		r.Get("/health", h.Health.Health)

		r.Route("/user", func(ur chi.Router) {
			ur.With(middleware.LoginRateLimit(logger, cfg.LoginRateLimit)).Post("/login", h.Auth.Login)
			ur.Post("/logout", h.Auth.Logout)

			ur.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				pr.With(rbac.Middleware(auth.CreateUser)).Post("/createUser", h.User.CreateUser)
				pr.With(rbac.Middleware(auth.UpdateUser)).Put("/updateUser", h.User.UpdateUser)
				pr.With(rbac.Middleware(auth.UpdateRole)).Put("/updateRole", h.Role.UpdateRole)
				pr.With(rbac.Middleware(auth.DeleteUser)).Delete("/deleteUser/{id}", h.User.DeleteUser)
				pr.With(rbac.Middleware(auth.ReadAllUsers)).Get("/getAllUsers", h.User.GetAllUsers)
				pr.With(rbac.Middleware(auth.ReadAllUsers)).Get("/usersByRoleName", h.User.UsersByRoleName)
				pr.With(rbac.Middleware(auth.ReadAllRoles)).Get("/getAllRoles", h.Role.GetAllRoles)
				pr.With(rbac.Middleware(auth.ReadAllDepartments)).Get("/getAllDepartments", h.Department.GetAllDepartments)
			})
		})

		r.Route("/employee", func(er chi.Router) {
			er.Use(h.Auth.AuthMiddleware)

			er.With(rbac.Middleware(auth.CreateEmployee)).Post("/addEmployee", h.Employee.AddEmployee)

			er.Group(func(rr chi.Router) {
				rr.Use(rbac.Middleware(auth.ReadAllEmployees))
				rr.Get("/employeesByJobType", h.Employee.EmployeesByJobType)
				rr.Get("/employeesByDepartment", h.Employee.EmployeesByDepartment)
				rr.Get("/employeeByUsername", h.Employee.EmployeeByUsername)
			})
		})
	})
}
