package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/jmoiron/sqlx"
)

const employeeColumns = `id, username, address, job_type, department_name, role_name, created_at, updated_at`

type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := r.db.Rebind(`INSERT INTO employees (username, address, job_type, department_name, role_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		e.Username, e.Address, e.JobType, e.DepartmentName, e.RoleName, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if datamodel.IsDuplicateKey(err) {
		return fmt.Errorf("employee %q: %w", e.Username, internal.ErrDuplicateKey)
	}
	return err
}

func (r *EmployeeRepository) GetByJobType(ctx context.Context, jobType string) ([]*employeeDatamodel.Employee, error) {
	employees := []*employeeDatamodel.Employee{}
	query := r.db.Rebind(`SELECT ` + employeeColumns + ` FROM employees WHERE job_type = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &employees, query, jobType); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByDepartment(ctx context.Context, departmentName string) ([]*employeeDatamodel.Employee, error) {
	employees := []*employeeDatamodel.Employee{}
	query := r.db.Rebind(`SELECT ` + employeeColumns + ` FROM employees WHERE department_name = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &employees, query, departmentName); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	query := r.db.Rebind(`SELECT ` + employeeColumns + ` FROM employees WHERE username = ?`)
	if err := r.db.GetContext(ctx, &e, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
