package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/domain/entity"
)

// UserProfileModel represents the user_profiles table in the database.
// Profiles are written by the external user-administration workflow; this
// service only reads them.
type UserProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserProfileModel.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ToEntity converts a UserProfileModel to a domain UserProfile entity.
func (m *UserProfileModel) ToEntity() *entity.UserProfile {
	return &entity.UserProfile{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		Role:      entity.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
