package department

type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}
