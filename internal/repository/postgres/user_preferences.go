package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"learnhub/internal/domain/models"
	"learnhub/internal/domain/repositories"
)

// PostgresUserPreferencesRepository implements the UserPreferencesRepository interface
type PostgresUserPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserPreferencesRepository creates a new PostgresUserPreferencesRepository
func NewUserPreferencesRepository(config *RepositoryConfig) repositories.UserPreferencesRepository {
	return &PostgresUserPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUserID retrieves preferences for a specific user
func (r *PostgresUserPreferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	query := fmt.Sprintf(`
		SELECT user_id, preferences, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.UserPreferences)

	var prefs models.UserPreferences
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Preferences,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Nothing saved yet is not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get user preferences: %w", err)
	}

	return &prefs, nil
}

// GetForUpdate inserts defaults when the row is missing, then selects it FOR UPDATE
func (r *PostgresUserPreferencesRepository) GetForUpdate(ctx context.Context, defaults *models.UserPreferences) (*models.UserPreferences, error) {
	if !repositories.InTx(ctx) {
		return nil, fmt.Errorf("lock user preferences: not in a transaction")
	}

	executor := GetExecutor(ctx, r.pool)

	insert := fmt.Sprintf(`
		INSERT INTO %s (user_id, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`, r.tables.UserPreferences)
	if _, err := executor.Exec(ctx, insert,
		defaults.UserID,
		defaults.Preferences,
		defaults.CreatedAt,
		defaults.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert default preferences: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT user_id, preferences, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		FOR UPDATE
	`, r.tables.UserPreferences)

	var prefs models.UserPreferences
	err := executor.QueryRow(ctx, query, defaults.UserID).Scan(
		&prefs.UserID,
		&prefs.Preferences,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock user preferences: %w", err)
	}

	return &prefs, nil
}

// Upsert inserts the preferences row or replaces its JSONB document.
// created_at is kept from the first insert.
func (r *PostgresUserPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, preferences, created_at, updated_at
	`, r.tables.UserPreferences)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		prefs.UserID,
		prefs.Preferences,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	).Scan(
		&prefs.UserID,
		&prefs.Preferences,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert user preferences: %w", err)
	}

	r.logger.Debug("user preferences saved",
		"user_id", prefs.UserID,
		"namespaces", len(prefs.Preferences),
	)

	return nil
}
