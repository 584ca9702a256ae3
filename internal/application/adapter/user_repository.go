package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// UserProfileRepository defines read access to user profiles. Profiles are
// managed by the external user-administration workflow; this service only
// resolves roles for authorization checks.
type UserProfileRepository interface {
	// FindByID retrieves a user profile by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error)
}
