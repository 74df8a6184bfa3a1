package user

import (
	"context"
)

// Repository persists user accounts. Lookups return (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StaffMember is the slice of a user the assignment engine needs.
type StaffMember struct {
	ID    uint
	Email string
	Name  string
}

// StaffDirectory lists the users eligible for assignment. Results are
// read fresh on every call.
type StaffDirectory interface {
	ListSupportStaff(ctx context.Context) ([]StaffMember, error)
}

// StaffIDs extracts the identifiers of members, preserving order.
func StaffIDs(members []StaffMember) []uint {
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
