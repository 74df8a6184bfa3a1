package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/infrastructure/persistence/mappers"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		mapper: mappers.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *servicerequest.Attachment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetBySID(ctx context.Context, sid string) (*servicerequest.Attachment, error) {
	return r.first(ctx, "sid = ?", sid)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*servicerequest.Attachment, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AttachmentRepository) first(ctx context.Context, cond string, arg any) (*servicerequest.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *AttachmentRepository) ListByServiceRequestID(ctx context.Context, serviceRequestID uint) ([]*servicerequest.Attachment, error) {
	grouped, err := r.ListByServiceRequestIDs(ctx, []uint{serviceRequestID})
	if err != nil {
		return nil, err
	}
	return grouped[serviceRequestID], nil
}

func (r *AttachmentRepository) ListByServiceRequestIDs(ctx context.Context, serviceRequestIDs []uint) (map[uint][]*servicerequest.Attachment, error) {
	result := make(map[uint][]*servicerequest.Attachment, len(serviceRequestIDs))
	if len(serviceRequestIDs) == 0 {
		return result, nil
	}

	var list []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("service_request_id IN ?", serviceRequestIDs).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	for i := range list {
		a, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		result[a.ServiceRequestID()] = append(result[a.ServiceRequestID()], a)
	}
	return result, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.AttachmentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("attachment %d not found", id)
	}
	return nil
}

func (r *AttachmentRepository) DeleteByServiceRequestID(ctx context.Context, serviceRequestID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("service_request_id = ?", serviceRequestID).
		Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}
