package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"learnhub/internal/domain/models"
	"learnhub/internal/domain/repositories"
	"learnhub/internal/domain/services"
)

// UserPreferencesService implements the UserPreferencesService interface
type UserPreferencesService struct {
	prefsRepo repositories.UserPreferencesRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewUserPreferencesService creates a new user preferences service
func NewUserPreferencesService(
	prefsRepo repositories.UserPreferencesRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.UserPreferencesService {
	return &UserPreferencesService{
		prefsRepo: prefsRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// getDefaultPreferences returns default preferences with namespaced structure
func (s *UserPreferencesService) getDefaultPreferences(userID uuid.UUID) *models.UserPreferences {
	now := time.Now()
	return &models.UserPreferences{
		UserID: userID,
		Preferences: models.JSONMap{
			"ui": map[string]interface{}{
				"theme": "light",
			},
			"content_tree": map[string]interface{}{
				"expanded": []interface{}{},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// load returns stored preferences or defaults when the user has none
func (s *UserPreferencesService) load(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	if prefs == nil {
		s.logger.Debug("no preferences found, returning defaults", "user_id", userID)
		prefs = s.getDefaultPreferences(userID)
	}
	if prefs.Preferences == nil {
		prefs.Preferences = models.JSONMap{}
	}

	return prefs, nil
}

// GetPreferences retrieves preferences for a user
func (s *UserPreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	return s.load(ctx, userID)
}

// UpdatePreferences replaces the namespaces present in req
func (s *UserPreferencesService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	var updated *models.UserPreferences
	err := s.modify(ctx, userID, func(prefs *models.UserPreferences) error {
		if req.UI != nil {
			if err := prefs.SetUI(req.UI); err != nil {
				return fmt.Errorf("update ui namespace: %w", err)
			}
		}

		if req.ContentTree != nil {
			tree := &models.ContentTreePreferences{Expanded: dedupe(req.ContentTree.Expanded)}
			if err := prefs.SetContentTree(tree); err != nil {
				return fmt.Errorf("update content_tree namespace: %w", err)
			}
		}

		updated = prefs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user preferences updated",
		"user_id", userID,
		"has_ui", req.UI != nil,
		"has_content_tree", req.ContentTree != nil,
	)

	return updated, nil
}

// UpdateExpandedNodes replaces the user's expanded node ids with fn(current)
func (s *UserPreferencesService) UpdateExpandedNodes(ctx context.Context, userID uuid.UUID, fn func(ids []string) []string) ([]string, error) {
	var saved []string
	err := s.modify(ctx, userID, func(prefs *models.UserPreferences) error {
		tree, err := prefs.GetContentTree()
		if err != nil {
			return fmt.Errorf("decode content_tree namespace: %w", err)
		}

		tree.Expanded = dedupe(fn(tree.Expanded))
		if err := prefs.SetContentTree(tree); err != nil {
			return fmt.Errorf("update content_tree namespace: %w", err)
		}

		saved = tree.Expanded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// modify runs fn on the user's locked preferences row and saves the result
// in the same transaction
func (s *UserPreferencesService) modify(ctx context.Context, userID uuid.UUID, fn func(prefs *models.UserPreferences) error) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		prefs, err := s.prefsRepo.GetForUpdate(txCtx, s.getDefaultPreferences(userID))
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		if prefs.Preferences == nil {
			prefs.Preferences = models.JSONMap{}
		}

		if err := fn(prefs); err != nil {
			return err
		}

		prefs.UpdatedAt = time.Now()
		if err := s.prefsRepo.Upsert(txCtx, prefs); err != nil {
			return fmt.Errorf("upsert preferences: %w", err)
		}
		return nil
	})
}

// dedupe drops repeated ids, keeping first occurrences, and never returns nil
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
