package role

import (
	"time"

	"github.com/frahmantamala/employee-management/internal/auth"
	roleDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/role"
)

type Role struct {
	ID          int64
	Name        string
	Permissions auth.PermissionSet
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Role) ToResponse() RoleResponse {
	perms := r.Permissions.Sorted()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: names,
	}
}

// ToAuthRole is the view the permission policy works with.
func (r *Role) ToAuthRole() *auth.Role {
	return &auth.Role{Name: r.Name, Permissions: r.Permissions}
}

// FromDataModel drops stored permission names outside the known set.
func FromDataModel(r *roleDatamodel.Role) *Role {
	set, _ := auth.ParsePermissionSet(r.PermissionNames())
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: set,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
