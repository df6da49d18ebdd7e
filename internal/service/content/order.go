package content

import (
	"context"
	"fmt"
	"log/slog"

	contentModels "learnhub/internal/domain/models/content"
	"learnhub/internal/domain/repositories"
	contentRepo "learnhub/internal/domain/repositories/content"
	"learnhub/internal/domain/services"
	contentSvc "learnhub/internal/domain/services/content"
)

// MoveItem returns a copy of ids with the element at from moved to index to,
// shifting the elements in between. ids itself is not modified.
func MoveItem(ids []string, from, to int) ([]string, error) {
	if from < 0 || from >= len(ids) {
		return nil, fieldError("from", fmt.Sprintf("index %d out of range [0, %d)", from, len(ids)))
	}
	if to < 0 || to >= len(ids) {
		return nil, fieldError("to", fmt.Sprintf("index %d out of range [0, %d)", to, len(ids)))
	}

	moved := make([]string, 0, len(ids))
	moved = append(moved, ids[:from]...)
	moved = append(moved, ids[from+1:]...)

	// Insert at to
	moved = append(moved, "")
	copy(moved[to+1:], moved[to:])
	moved[to] = ids[from]

	return moved, nil
}

// orderService implements the OrderService interface
type orderService struct {
	contentRepo contentRepo.ContentRepository
	txManager   repositories.TransactionManager
	authorizer  services.ContentAuthorizer
	logger      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	contentRepo contentRepo.ContentRepository,
	txManager repositories.TransactionManager,
	authorizer services.ContentAuthorizer,
	logger *slog.Logger,
) contentSvc.OrderService {
	return &orderService{
		contentRepo: contentRepo,
		txManager:   txManager,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// Reorder persists a full ordering of one topic
func (s *orderService) Reorder(ctx context.Context, req *contentSvc.ReorderRequest) ([]contentModels.ContentItem, error) {
	if err := s.authorizer.CanManageContent(ctx, req.Actor); err != nil {
		return nil, err
	}
	if err := validatePath(&req.Path); err != nil {
		return nil, err
	}

	var items []contentModels.ContentItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.lockedTopic(txCtx, req.Path)
		if err != nil {
			return err
		}
		if err := validateOrderedIDs(req.Path, req.IDs, current); err != nil {
			return err
		}

		items, err = s.applyOrder(txCtx, current, req.IDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic reordered",
		"institute", req.Path.Institute,
		"subject", req.Path.Subject,
		"chapter", req.Path.Chapter,
		"topic", req.Path.Topic,
		"item_count", len(items),
		"user_id", req.Actor.UserID,
	)

	return items, nil
}

// Move relocates one row of a topic's order table
func (s *orderService) Move(ctx context.Context, req *contentSvc.MoveRequest) ([]contentModels.ContentItem, error) {
	if err := s.authorizer.CanManageContent(ctx, req.Actor); err != nil {
		return nil, err
	}
	if err := validatePath(&req.Path); err != nil {
		return nil, err
	}
	if req.From == nil {
		return nil, fieldError("from", "is required")
	}
	if req.To == nil {
		return nil, fieldError("to", "is required")
	}

	var items []contentModels.ContentItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.lockedTopic(txCtx, req.Path)
		if err != nil {
			return err
		}

		ids := make([]string, len(current))
		for i := range current {
			ids[i] = current[i].ID
		}

		moved, err := MoveItem(ids, *req.From, *req.To)
		if err != nil {
			return err
		}

		items, err = s.applyOrder(txCtx, current, moved)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic item moved",
		"topic", req.Path.Topic,
		"from", *req.From,
		"to", *req.To,
		"user_id", req.Actor.UserID,
	)

	return items, nil
}

// lockedTopic takes the topic lock and returns the topic's items by position
func (s *orderService) lockedTopic(ctx context.Context, path contentModels.TopicPath) ([]contentModels.ContentItem, error) {
	if err := s.contentRepo.LockTopic(ctx, path); err != nil {
		return nil, err
	}
	return s.contentRepo.ListByTopic(ctx, path)
}

// applyOrder writes position = index for every id whose position changed and
// returns the items in their new order
func (s *orderService) applyOrder(ctx context.Context, current []contentModels.ContentItem, ids []string) ([]contentModels.ContentItem, error) {
	byID := make(map[string]contentModels.ContentItem, len(current))
	for _, item := range current {
		byID[item.ID] = item
	}

	ordered := make([]contentModels.ContentItem, 0, len(ids))
	for position, id := range ids {
		item := byID[id]
		if item.Position != position {
			if err := s.contentRepo.UpdatePosition(ctx, id, position); err != nil {
				return nil, err
			}
			item.Position = position
		}
		ordered = append(ordered, item)
	}

	return ordered, nil
}
