package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/infrastructure/persistence/mappers"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/db"
	"servicedesk/internal/shared/logger"
)

// UserRepository persists accounts and doubles as the staff directory the
// assignment engine reads from.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "role", model.Role)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail matches case-insensitively; addresses are stored lowercased.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u, err := r.mapper.ToDomain(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return u, nil
}

// GetByIDs retrieves multiple users by internal IDs. Rows that fail to map
// are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	var list []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&list).Error; err != nil {
		r.logger.Errorw("failed to get users by IDs", "ids", ids, "error", err)
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	users := make([]*user.User, 0, len(list))
	for i := range list {
		u, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			r.logger.Warnw("failed to map user model, skipping", "id", list[i].ID, "error", err)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// ListSupportStaff returns every active support staff member ordered by
// ID. It always hits the database.
func (r *UserRepository) ListSupportStaff(ctx context.Context) ([]user.StaffMember, error) {
	var list []models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("role = ? AND status = ?", authorization.RoleSupportStaff.String(), vo.StatusActive.String()).
		Order("id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list support staff", "error", err)
		return nil, fmt.Errorf("failed to list support staff: %w", err)
	}

	staff := make([]user.StaffMember, 0, len(list))
	for i := range list {
		u, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			r.logger.Warnw("failed to map staff member, skipping", "id", list[i].ID, "error", err)
			continue
		}
		staff = append(staff, user.StaffMember{
			ID:    u.ID(),
			Email: u.Email().String(),
			Name:  u.DisplayName(),
		})
	}
	return staff, nil
}
