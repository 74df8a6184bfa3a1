package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/infrastructure/persistence/mappers"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/constants"
	"servicedesk/internal/shared/db"
)

type ServiceRequestRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceRequestMapper
}

func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{
		db:     db,
		mapper: mappers.NewServiceRequestMapper(),
	}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, sr *servicerequest.ServiceRequest) error {
	model := r.mapper.ToModel(sr)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Omit("Attachments").Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}

	return sr.SetID(model.ID)
}

func (r *ServiceRequestRepository) GetBySID(ctx context.Context, sid string) (*servicerequest.ServiceRequest, error) {
	return r.first(ctx, "sid = ?", sid)
}

func (r *ServiceRequestRepository) GetByID(ctx context.Context, id uint) (*servicerequest.ServiceRequest, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ServiceRequestRepository) first(ctx context.Context, cond string, arg any) (*servicerequest.ServiceRequest, error) {
	var model models.ServiceRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// UpdateStatus writes only the mutable columns so a concurrent writer
// cannot resurrect stale title or assignment values.
func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, sr *servicerequest.ServiceRequest) error {
	model := r.mapper.ToModel(sr)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServiceRequestModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update service request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("service request %d not found", model.ID)
	}
	return nil
}

func (r *ServiceRequestRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ServiceRequestModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("service request %d not found", id)
	}
	return nil
}

func (r *ServiceRequestRepository) List(ctx context.Context, filter servicerequest.ListFilter) ([]*servicerequest.ServiceRequest, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ServiceRequestModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupportStaffID != nil {
		query = query.Where("support_staff_id = ?", *filter.SupportStaffID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service requests: %w", err)
	}

	filter.Normalize()
	var list []models.ServiceRequestModel
	if err := query.
		Scopes(db.NewestFirst(constants.TableServiceRequests), db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list service requests: %w", err)
	}

	requests, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}
