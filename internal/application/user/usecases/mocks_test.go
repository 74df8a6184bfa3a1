package usecases

import (
	"context"
	"errors"
	"log/slog"

	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/biztime"
	"servicedesk/internal/shared/logger"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	created           []*user.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, u); err != nil {
			return err
		}
	}
	m.created = append(m.created, u)
	return u.SetID(uint(len(m.created)))
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(context.Context, []uint) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Verify(p, h string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	IssueFunc         func(u *user.User) (*TokenPair, error)
	VerifyRefreshFunc func(token string) (uint, error)
}

func (m *mockTokenIssuer) Issue(u *user.User) (*TokenPair, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(u)
	}
	return &TokenPair{AccessToken: "access-" + u.SID(), RefreshToken: "refresh-" + u.SID(), ExpiresIn: 900}, nil
}

func (m *mockTokenIssuer) VerifyRefresh(token string) (uint, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return 0, errors.New("not configured")
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func existingUser(id uint, email, password string, role authorization.UserRole, status vo.Status) *user.User {
	e, err := vo.NewEmail(email)
	if err != nil {
		panic(err)
	}
	now := biztime.NowUTC()
	u, err := user.ReconstructUser(id, "usr_existing", e, "Sam", "Staff", "hashed:"+password, role, status, now, now)
	if err != nil {
		panic(err)
	}
	return u
}
