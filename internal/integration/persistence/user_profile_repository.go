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

// userProfileRepository implements the adapter.UserProfileRepository interface.
type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new user profile repository instance.
func NewUserProfileRepository(db *gorm.DB) adapter.UserProfileRepository {
	return &userProfileRepository{
		db: db,
	}
}

// FindByID retrieves a user profile by its ID.
func (r *userProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	var profileModel model.UserProfileModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNotAuthenticated
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}
