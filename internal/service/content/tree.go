package content

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"learnhub/internal/config"
	"learnhub/internal/domain"
	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
	contentRepo "learnhub/internal/domain/repositories/content"
	"learnhub/internal/domain/services"
	contentSvc "learnhub/internal/domain/services/content"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// treeService implements the TreeService interface
type treeService struct {
	contentRepo  contentRepo.ContentRepository
	prefsService services.UserPreferencesService
	logger       *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	contentRepo contentRepo.ContentRepository,
	prefsService services.UserPreferencesService,
	logger *slog.Logger,
) contentSvc.TreeService {
	return &treeService{
		contentRepo:  contentRepo,
		prefsService: prefsService,
		logger:       logger,
	}
}

// GetContentTree builds the content hierarchy for the filtered items and
// attaches the user's expanded node ids, dropping ids no longer in the tree
func (s *treeService) GetContentTree(ctx context.Context, userID string, filter contentModels.Filter) (*contentModels.TreeResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var (
		items    []contentModels.ContentItem
		expanded []string
		ui       *models.UIPreferences
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all, err := s.contentRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("list contents: %w", err)
		}
		items = filter.Apply(all)
		return nil
	})
	g.Go(func() error {
		prefs, err := s.prefsService.GetPreferences(gctx, uid)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		tree, err := prefs.GetContentTree()
		if err != nil {
			return fmt.Errorf("decode content_tree preferences: %w", err)
		}
		if ui, err = prefs.GetUI(); err != nil {
			return fmt.Errorf("decode ui preferences: %w", err)
		}
		expanded = tree.Expanded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roots := BuildHierarchy(items)

	expandedSet := NewExpandedSet(expanded...)
	pruned := 0
	if filter.IsEmpty() {
		// A filtered tree hides nodes that still exist, so only prune the full tree
		pruned = expandedSet.Prune(roots)
	}

	s.logger.Info("content tree built",
		"user_id", userID,
		"root_count", len(roots),
		"item_count", len(items),
		"expanded_count", expandedSet.Len(),
		"pruned_count", pruned,
	)

	return &contentModels.TreeResponse{
		Roots:      roots,
		Expanded:   expandedSet.IDs(),
		ShowCounts: ui.CountsVisible(),
		TotalItems: CountItems(roots),
	}, nil
}

// ToggleNode flips one node's expanded state in the user's preferences
func (s *treeService) ToggleNode(ctx context.Context, userID, nodeID string) (*contentSvc.ToggleResult, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if nodeID == "" {
		return nil, fieldError("node_id", "cannot be blank")
	}
	if utf8.RuneCountInString(nodeID) > config.MaxTreeNodeIDLength {
		return nil, fieldError("node_id", "is too long")
	}

	var expanded bool
	_, err = s.prefsService.UpdateExpandedNodes(ctx, uid, func(ids []string) []string {
		set := NewExpandedSet(ids...)
		expanded = set.Toggle(nodeID)
		return set.IDs()
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("tree node toggled",
		"user_id", userID,
		"node_id", nodeID,
		"expanded", expanded,
	)

	return &contentSvc.ToggleResult{NodeID: nodeID, Expanded: expanded}, nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", userID, domain.ErrUnauthorized)
	}
	return uid, nil
}
