package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/user"
)

// DefaultAdminPassword is used when no admin password is supplied.
const DefaultAdminPassword = "admin_secure_password"

type RoleSeeder interface {
	CreateIfAbsent(ctx context.Context, name string, permissions []auth.Permission) (bool, error)
}

type UserSeeder interface {
	Exists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, actor string, dto user.CreateUserDTO) (*user.User, error)
}

type EmployeeSeeder interface {
	CreateEmployee(ctx context.Context, actor string, dto employee.CreateEmployeeDTO) (*employee.Employee, error)
}

type Options struct {
	AdminPassword string
	Demo          bool
}

// Report counts what a run actually inserted.
type Report struct {
	Roles     int
	Users     int
	Employees int
}

type Seeder struct {
	roles     RoleSeeder
	users     UserSeeder
	employees EmployeeSeeder
	logger    *slog.Logger
}

func NewSeeder(roles RoleSeeder, users UserSeeder, employees EmployeeSeeder, logger *slog.Logger) *Seeder {
	return &Seeder{
		roles:     roles,
		users:     users,
		employees: employees,
		logger:    logger,
	}
}

const actor = "seed"

// Run is idempotent: roles, users and employees that already exist are
// skipped, never overwritten.
func (s *Seeder) Run(ctx context.Context, opts Options) (Report, error) {
	var report Report

	for _, name := range []string{auth.RoleAdmin, auth.RoleHRManager, auth.RoleEmployee} {
		created, err := s.roles.CreateIfAbsent(ctx, name, auth.DefaultRolePermissions[name])
		if err != nil {
			return report, fmt.Errorf("seed role %s: %w", name, err)
		}
		if created {
			report.Roles++
		}
	}

	password := opts.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
	}
	users := []user.CreateUserDTO{{
		Username:    "admin",
		Password:    password,
		FirstName:   "Admin",
		LastName:    "User",
		Email:       "admin@yourdomain.com",
		PhoneNumber: "1234567890",
		DateOfBirth: "1970-01-01",
		RoleName:    auth.RoleAdmin,
	}}
	if opts.Demo {
		users = append(users, demoUsers...)
	}

	for _, dto := range users {
		created, err := s.seedUser(ctx, dto)
		if err != nil {
			return report, err
		}
		if created {
			report.Users++
		}
	}

	if opts.Demo {
		for _, dto := range demoEmployees {
			_, err := s.employees.CreateEmployee(ctx, actor, dto)
			if err != nil {
				if isConflict(err) {
					continue
				}
				return report, fmt.Errorf("seed employee %s: %w", dto.Username, err)
			}
			report.Employees++
		}
	}

	s.logger.InfoContext(ctx, "seed complete",
		"roles_created", report.Roles,
		"users_created", report.Users,
		"employees_created", report.Employees)
	return report, nil
}

func (s *Seeder) seedUser(ctx context.Context, dto user.CreateUserDTO) (bool, error) {
	exists, err := s.users.Exists(ctx, dto.Username)
	if err != nil {
		return false, fmt.Errorf("seed user %s: %w", dto.Username, err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.users.CreateUser(ctx, actor, dto); err != nil {
		if isConflict(err) {
			return false, nil
		}
		return false, fmt.Errorf("seed user %s: %w", dto.Username, err)
	}
	return true, nil
}

func isConflict(err error) bool {
	var appErr *internal.AppError
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict
}

var demoUsers = []user.CreateUserDTO{
	{Username: "calstone", Password: "stone123", FirstName: "Cal", LastName: "Stone",
		Email: "calstone@gmail.com", PhoneNumber: "1234467890", DateOfBirth: "1970-01-01", RoleName: auth.RoleAdmin},
	{Username: "benstone", Password: "benstone123", FirstName: "Ben", LastName: "Stone",
		Email: "benstone@gmail.com", PhoneNumber: "9876543210", DateOfBirth: "1970-01-01", RoleName: auth.RoleHRManager},
	{Username: "johndoe", Password: "johndoe123", FirstName: "John", LastName: "Doe",
		Email: "johndoe@gmail.com", PhoneNumber: "1478523690", DateOfBirth: "1970-01-01", RoleName: auth.RoleEmployee},
	{Username: "johnwick", Password: "johndoe123", FirstName: "John", LastName: "Wick",
		Email: "johnwick@gmail.com", PhoneNumber: "7412596300", DateOfBirth: "1972-01-01", RoleName: auth.RoleEmployee},
}

var demoEmployees = []employee.CreateEmployeeDTO{
	{Username: "johndoe", Address: "123, Main Street, CA, 2051", JobType: "FULL_TIME",
		DepartmentName: "ENGINEERING", RoleName: auth.RoleEmployee},
	{Username: "johnwick", Address: "Horseshoe Road, Mill Neck, Long Island", JobType: "CONTRACT",
		DepartmentName: "SECRET OPERATIONS", RoleName: auth.RoleEmployee},
}
