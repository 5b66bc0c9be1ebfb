package employee

type CreateEmployeeDTO struct {
	Username       string `json:"username" validate:"required,notblank"`
	Address        string `json:"address"`
	JobType        string `json:"jobType" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT"`
	DepartmentName string `json:"departmentName" validate:"required,notblank"`
	RoleName       string `json:"roleName" validate:"required,notblank"`
}

type CreateEmployeeResponse struct {
	Message     string    `json:"message"`
	NewEmployee *Employee `json:"newEmployee"`
}

type EmployeesByJobTypeResponse struct {
	EmployeesByJobType []*Employee `json:"employeesByJobType"`
}

type EmployeesByDepartmentResponse struct {
	EmployeesByDepartment []*Employee `json:"employeesByDepartment"`
}

type EmployeeByUsernameResponse struct {
	EmployeeByUsername *Employee `json:"employeeByUsername"`
}
