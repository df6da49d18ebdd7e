package services

import (
	"context"

	"github.com/google/uuid"
	"learnhub/internal/domain/models"
)

// UserPreferencesService defines the business logic for user preferences operations
type UserPreferencesService interface {
	// GetPreferences retrieves preferences for a user
	// Returns default preferences if none exist yet
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)

	// UpdatePreferences replaces the namespaces present in req
	// Creates new preferences if they don't exist
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error)

	// UpdateExpandedNodes replaces the user's expanded content tree node ids
	// with fn(current). fn runs while the user's preferences are locked, so
	// concurrent updates apply one after another. Returns the saved ids.
	UpdateExpandedNodes(ctx context.Context, userID uuid.UUID, fn func(ids []string) []string) ([]string, error)
}
