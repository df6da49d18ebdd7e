package repositories

import (
	"context"

	"github.com/google/uuid"
	"learnhub/internal/domain/models"
)

// UserPreferencesRepository defines the interface for user preferences data access
type UserPreferencesRepository interface {
	// GetByUserID retrieves preferences for a specific user
	// Returns nil, nil if the user has not saved any preferences yet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)

	// GetForUpdate returns the user's row locked until the surrounding
	// transaction ends, inserting defaults first when the user has none.
	// It must be called inside ExecTx.
	GetForUpdate(ctx context.Context, defaults *models.UserPreferences) (*models.UserPreferences, error)

	// Upsert creates the row on first save and replaces the JSONB document afterwards
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}
