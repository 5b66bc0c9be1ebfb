package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/employee-management/internal/core/datamodel"
	departmentDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/department"
	"github.com/frahmantamala/employee-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) EnsureExists(ctx context.Context, name string) (*departmentDatamodel.Department, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil || existing != nil {
		return existing, false, err
	}

	dept := &departmentDatamodel.Department{Name: name}
	err = r.db.WithContext(ctx).Create(dept).Error
	if err == nil {
		return dept, true, nil
	}
	if !datamodel.IsDuplicateKey(err) {
		return nil, false, err
	}

	existing, err = r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("department %q vanished after duplicate insert", name)
	}
	return existing, false, nil
}
