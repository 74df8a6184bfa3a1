package user

import (
	"errors"
	"fmt"

	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/shared/biztime"
)

var ErrPasswordMismatch = errors.New("password does not match")

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// SetPassword validates plain against policy and stores its hash.
func (u *User) SetPassword(plain string, policy vo.PasswordPolicy, hasher PasswordHasher) error {
	if err := policy.Validate(plain); err != nil {
		return err
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) VerifyPassword(plain string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return ErrPasswordMismatch
	}
	if err := hasher.Verify(plain, u.passwordHash); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
