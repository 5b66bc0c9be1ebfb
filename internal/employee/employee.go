package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

type JobType string

const (
	JobTypeFullTime JobType = "FULL_TIME"
	JobTypePartTime JobType = "PART_TIME"
	JobTypeContract JobType = "CONTRACT"
)

func (j JobType) Valid() bool {
	switch j {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract:
		return true
	}
	return false
}

type Employee struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Address        string    `json:"address"`
	JobType        JobType   `json:"jobType"`
	DepartmentName string    `json:"departmentName"`
	RoleName       string    `json:"roleName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:             e.ID,
		Username:       e.Username,
		Address:        e.Address,
		JobType:        string(e.JobType),
		DepartmentName: e.DepartmentName,
		RoleName:       e.RoleName,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:             e.ID,
		Username:       e.Username,
		Address:        e.Address,
		JobType:        JobType(e.JobType),
		DepartmentName: e.DepartmentName,
		RoleName:       e.RoleName,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func fromDataModels(es []*employeeDatamodel.Employee) []*Employee {
	out := make([]*Employee, 0, len(es))
	for _, e := range es {
		out = append(out, FromDataModel(e))
	}
	return out
}
