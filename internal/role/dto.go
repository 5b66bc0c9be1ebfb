package role

type RoleResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type RolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

type UpdateRoleDTO struct {
	RoleName    string   `json:"roleName" validate:"required"`
	Permissions []string `json:"permissions" validate:"required"`
}

type UpdateRoleResponse struct {
	Message    string       `json:"message"`
	UpdateRole RoleResponse `json:"updateRole"`
}
