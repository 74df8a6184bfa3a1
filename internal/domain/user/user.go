package user

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/biztime"
	"servicedesk/internal/shared/id"
)

const maxNameLength = 100

// User is an account that can authenticate. Its role decides which
// service request operations it may perform.
type User struct {
	id           uint
	sid          string
	email        *vo.Email
	firstName    string
	lastName     string
	passwordHash string
	role         authorization.UserRole
	status       vo.Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active account without a password.
func NewUser(email *vo.Email, firstName, lastName string, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if len(firstName) > maxNameLength || len(lastName) > maxNameLength {
		return nil, fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}

	sid, err := id.NewUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		sid:       sid,
		email:     email,
		firstName: firstName,
		lastName:  lastName,
		role:      role,
		status:    vo.StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id uint,
	sid string,
	email *vo.Email,
	firstName, lastName string,
	passwordHash string,
	role authorization.UserRole,
	status vo.Status,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: passwordHash,
		role:         role,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) SID() string                  { return u.sid }
func (u *User) Email() *vo.Email             { return u.email }
func (u *User) FirstName() string            { return u.firstName }
func (u *User) LastName() string             { return u.lastName }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Status() vo.Status            { return u.status }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// DisplayName is "First Last" with each word title-cased, falling back to
// the email address.
func (u *User) DisplayName() string {
	parts := strings.Fields(u.firstName + " " + u.lastName)
	if len(parts) == 0 {
		return u.email.String()
	}
	caser := cases.Title(language.English)
	for i, part := range parts {
		parts[i] = caser.String(strings.ToLower(part))
	}
	return strings.Join(parts, " ")
}

func (u *User) IsActive() bool {
	return u.status.IsActive()
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
