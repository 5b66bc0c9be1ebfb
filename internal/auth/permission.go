package auth

import (
	"fmt"
	"sort"
	"strings"
)

// Permission is one independent action tag. Holding one never implies another.
type Permission string

const (
	CreateUser Permission = "CREATE_USER"
	ReadUser   Permission = "READ_USER"
	UpdateUser Permission = "UPDATE_USER"
	DeleteUser Permission = "DELETE_USER"

	CreateEmployee Permission = "CREATE_EMPLOYEE"
	ReadEmployee   Permission = "READ_EMPLOYEE"
	UpdateEmployee Permission = "UPDATE_EMPLOYEE"
	DeleteEmployee Permission = "DELETE_EMPLOYEE"

	CreateRole Permission = "CREATE_ROLE"
	ReadRole   Permission = "READ_ROLE"
	UpdateRole Permission = "UPDATE_ROLE"
	DeleteRole Permission = "DELETE_ROLE"

	ReadAllUsers       Permission = "READ_ALL_USERS"
	ReadAllEmployees   Permission = "READ_ALL_EMPLOYEES"
	ReadAllRoles       Permission = "READ_ALL_ROLES"
	ReadAllDepartments Permission = "READ_ALL_DEPARTMENTS"
)

// AllPermissions is the closed set of permission tags.
var AllPermissions = []Permission{
	CreateUser, ReadUser, UpdateUser, DeleteUser,
	CreateEmployee, ReadEmployee, UpdateEmployee, DeleteEmployee,
	CreateRole, ReadRole, UpdateRole, DeleteRole,
	ReadAllUsers, ReadAllEmployees, ReadAllRoles, ReadAllDepartments,
}

var knownPermissions = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		m[p] = struct{}{}
	}
	return m
}()

const (
	RoleAdmin     = "ADMIN"
	RoleHRManager = "HR MANAGER"
	RoleEmployee  = "EMPLOYEE"
)

// DefaultRolePermissions is the role table installed by the seeder.
var DefaultRolePermissions = map[string][]Permission{
	RoleAdmin: AllPermissions,
	RoleHRManager: {
		CreateUser, UpdateUser,
		CreateEmployee, ReadEmployee, UpdateEmployee,
		CreateRole, ReadRole,
		ReadAllEmployees, ReadAllDepartments,
	},
	RoleEmployee: {ReadUser, UpdateUser},
}

func (p Permission) String() string { return string(p) }

func (p Permission) Valid() bool {
	_, ok := knownPermissions[p]
	return ok
}

// ParsePermission accepts only names from the closed permission set.
func ParsePermission(name string) (Permission, error) {
	p := Permission(strings.TrimSpace(name))
	if !p.Valid() {
		return "", fmt.Errorf("unknown permission %q", name)
	}
	return p, nil
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// ParsePermissionSet validates every name and collapses duplicates. The
// returned slice lists the names that were rejected.
func ParsePermissionSet(names []string) (PermissionSet, []string) {
	set := make(PermissionSet, len(names))
	var invalid []string
	for _, name := range names {
		p, err := ParsePermission(name)
		if err != nil {
			invalid = append(invalid, name)
			continue
		}
		set[p] = struct{}{}
	}
	return set, invalid
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members in a stable order for storage and responses.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Role is the resolved role of a principal: its name and current permissions.
type Role struct {
	Name        string
	Permissions PermissionSet
}

// NormalizeRoleName upper-cases and trims a role or department name.
func NormalizeRoleName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func IsAdmin(role *Role) bool {
	return role != nil && role.Name == RoleAdmin
}

// HasPermission is the single authorization query. The ADMIN role satisfies
// every check regardless of its stored permission set.
func HasPermission(role *Role, p Permission) bool {
	if role == nil {
		return false
	}
	if IsAdmin(role) {
		return true
	}
	return role.Permissions.Has(p)
}
