package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestion-irrigation/backend/internal/application/adapter"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
	"github.com/gestion-irrigation/backend/internal/integration/persistence/model"
)

// settlementRepository implements the adapter.SettlementRepository interface.
type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository instance.
func NewSettlementRepository(db *gorm.DB) adapter.SettlementRepository {
	return &settlementRepository{
		db: db,
	}
}

// Create creates a new settlement in the database.
func (r *settlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	settlementModel := model.SettlementFromEntity(settlement)
	result := r.db.WithContext(ctx).Create(settlementModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a settlement by its ID.
func (r *settlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	var settlementModel model.SettlementModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&settlementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettlementNotFound
		}
		return nil, result.Error
	}
	return settlementModel.ToEntity(), nil
}

// FindAll retrieves all settlements, newest first.
func (r *settlementRepository) FindAll(ctx context.Context) ([]*entity.Settlement, error) {
	var settlementModels []model.SettlementModel
	result := r.db.WithContext(ctx).
		Order("settled_at DESC, created_at DESC").
		Find(&settlementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	settlements := make([]*entity.Settlement, len(settlementModels))
	for i, sm := range settlementModels {
		settlements[i] = sm.ToEntity()
	}
	return settlements, nil
}

// FindByContract retrieves all settlements recorded against a contract.
func (r *settlementRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]*entity.Settlement, error) {
	var settlementModels []model.SettlementModel
	result := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("settled_at DESC").
		Find(&settlementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	settlements := make([]*entity.Settlement, len(settlementModels))
	for i, sm := range settlementModels {
		settlements[i] = sm.ToEntity()
	}
	return settlements, nil
}

// Update updates an existing settlement in the database.
func (r *settlementRepository) Update(ctx context.Context, settlement *entity.Settlement) error {
	settlementModel := model.SettlementFromEntity(settlement)
	result := r.db.WithContext(ctx).
		Model(&model.SettlementModel{}).
		Where("id = ?", settlement.ID).
		Updates(settlementModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSettlementNotFound
	}
	return nil
}

// Delete removes a settlement from the database.
func (r *settlementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SettlementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSettlementNotFound
	}
	return nil
}
