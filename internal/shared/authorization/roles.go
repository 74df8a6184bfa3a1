package authorization

import "fmt"

// UserRole is the role carried by an authenticated identity.
type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleSupportStaff UserRole = "support_staff"
	RoleAdmin        UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSupportStaff, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsCustomer() bool     { return r == RoleCustomer }
func (r UserRole) IsSupportStaff() bool { return r == RoleSupportStaff }
func (r UserRole) IsAdmin() bool        { return r == RoleAdmin }

// IsSelfAssignable reports whether a user may pick this role at sign-up.
func (r UserRole) IsSelfAssignable() bool {
	return r == RoleCustomer || r == RoleSupportStaff
}

// ParseUserRole parses s; an empty string yields RoleCustomer.
func ParseUserRole(s string) (UserRole, error) {
	if s == "" {
		return RoleCustomer, nil
	}
	role := UserRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
