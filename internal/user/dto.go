package user

type CreateUserDTO struct {
	Username    string `json:"username" validate:"required,notblank"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FirstName   string `json:"firstName" validate:"omitempty,min=1"`
	LastName    string `json:"lastName" validate:"omitempty,min=1"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=10"`
	DateOfBirth string `json:"dateOfBirth"`
	RoleName    string `json:"roleName" validate:"required,notblank"`
}

// UpdateUserDTO identifies the target by username. Nil fields are left
// unchanged. Password and RoleName are only applied for ADMIN callers.
type UpdateUserDTO struct {
	Username    string  `json:"username" validate:"required,notblank"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,min=10"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	RoleName    *string `json:"roleName,omitempty" validate:"omitempty,min=1"`
}

type UserMessageResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UsersResponse struct {
	Users []*User `json:"users"`
}

type UsersByRoleResponse struct {
	EmployeesByRoleName []*User `json:"employeesByRoleName"`
}
