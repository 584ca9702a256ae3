// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
	"github.com/gestion-irrigation/backend/internal/integration/persistence/model"
)

// contractRepository implements the adapter.ContractRepository interface.
type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository instance.
func NewContractRepository(db *gorm.DB) adapter.ContractRepository {
	return &contractRepository{
		db: db,
	}
}

// FindActiveWithMarket retrieves all active contracts with their linked
// market expanded. The status filter lives here, at the fetch boundary:
// completed and cancelled contracts never enter the financial aggregation.
func (r *contractRepository) FindActiveWithMarket(ctx context.Context) ([]*entity.Contract, error) {
	var contractModels []model.ContractModel
	result := r.db.WithContext(ctx).
		Preload("Market").
		Where("status = ?", string(entity.ContractStatusActive)).
		Order("start_date DESC").
		Find(&contractModels)
	if result.Error != nil {
		return nil, result.Error
	}

	contracts := make([]*entity.Contract, len(contractModels))
	for i, cm := range contractModels {
		contracts[i] = cm.ToEntity()
	}
	return contracts, nil
}

// FindByID retrieves a contract by its ID.
func (r *contractRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contract, error) {
	var contractModel model.ContractModel
	result := r.db.WithContext(ctx).
		Preload("Market").
		Where("id = ?", id).
		First(&contractModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrContractNotFound
		}
		return nil, result.Error
	}
	return contractModel.ToEntity(), nil
}

// UpdatePaymentState persists a payment-status transition and its derived
// field side effects, returning the updated contract.
func (r *contractRepository) UpdatePaymentState(ctx context.Context, id uuid.UUID, update adapter.PaymentStateUpdate) (*entity.Contract, error) {
	columns := map[string]interface{}{
		"payment_status": string(update.Status),
		"updated_at":     time.Now().UTC(),
	}
	if update.PartialAmount != nil {
		columns["partial_amount"] = *update.PartialAmount
	}
	if update.RemainingAmount != nil {
		columns["remaining_amount"] = *update.RemainingAmount
	}

	result := r.db.WithContext(ctx).
		Model(&model.ContractModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerror.ErrContractNotFound
	}

	return r.FindByID(ctx, id)
}
