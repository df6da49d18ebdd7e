package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
	"learnhub/internal/domain/repositories"
	contentRepo "learnhub/internal/domain/repositories/content"
	"learnhub/internal/domain/services"
	contentSvc "learnhub/internal/domain/services/content"
)

// contentService implements the ContentService interface
type contentService struct {
	contentRepo contentRepo.ContentRepository
	txManager   repositories.TransactionManager
	authorizer  services.ContentAuthorizer
	logger      *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	contentRepo contentRepo.ContentRepository,
	txManager repositories.TransactionManager,
	authorizer services.ContentAuthorizer,
	logger *slog.Logger,
) contentSvc.ContentService {
	return &contentService{
		contentRepo: contentRepo,
		txManager:   txManager,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// CreateContent validates and stores a new item at the end of its topic
func (s *contentService) CreateContent(ctx context.Context, req *contentSvc.CreateContentRequest) (*contentModels.ContentItem, error) {
	if err := s.authorizer.CanManageContent(ctx, req.Actor); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &contentModels.ContentItem{
		Title:     strings.TrimSpace(req.Title),
		Institute: strings.TrimSpace(req.Institute),
		Subject:   strings.TrimSpace(req.Subject),
		Chapter:   strings.TrimSpace(req.Chapter),
		Topic:     strings.TrimSpace(req.Topic),
		Type:      req.Type,
		URL:       normalizeOptional(req.URL),
		Body:      normalizeOptional(req.Body),
		CreatedBy: req.Actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.contentRepo.LockTopic(txCtx, item.Path()); err != nil {
			return err
		}
		position, err := s.contentRepo.NextPosition(txCtx, item.Path())
		if err != nil {
			return err
		}
		item.Position = position
		return s.contentRepo.Create(txCtx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content created",
		"id", item.ID,
		"title", item.Title,
		"type", item.Type,
		"topic", item.Topic,
		"position", item.Position,
		"user_id", req.Actor.UserID,
	)

	return item, nil
}

// GetContent retrieves an item by ID
func (s *contentService) GetContent(ctx context.Context, id string) (*contentModels.ContentItem, error) {
	return s.contentRepo.GetByID(ctx, id)
}

// ListContents returns every item passing the filter, in tree order
func (s *contentService) ListContents(ctx context.Context, filter contentModels.Filter) ([]contentModels.ContentItem, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	items, err := s.contentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return filter.Apply(items), nil
}

// UpdateContent applies a partial update. Moving an item to another topic
// appends it to the end of that topic.
func (s *contentService) UpdateContent(ctx context.Context, id string, req *contentSvc.UpdateContentRequest) (*contentModels.ContentItem, error) {
	if err := s.authorizer.CanManageContent(ctx, req.Actor); err != nil {
		return nil, err
	}

	var item *contentModels.ContentItem
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.contentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		previousPath := existing.Path()
		applyUpdate(existing, req)
		existing.UpdatedAt = time.Now()

		if err := validateItem(existing); err != nil {
			return err
		}

		if existing.Path() != previousPath {
			if err := s.contentRepo.LockTopic(txCtx, existing.Path()); err != nil {
				return err
			}
			position, err := s.contentRepo.NextPosition(txCtx, existing.Path())
			if err != nil {
				return err
			}
			existing.Position = position
		}

		if err := s.contentRepo.Update(txCtx, existing); err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("content updated",
		"id", item.ID,
		"title", item.Title,
		"user_id", req.Actor.UserID,
	)

	return item, nil
}

// DeleteContent soft-deletes an item
func (s *contentService) DeleteContent(ctx context.Context, actor models.Actor, id string) (*contentModels.ContentItem, error) {
	if err := s.authorizer.CanManageContent(ctx, actor); err != nil {
		return nil, err
	}

	item, err := s.contentRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("content deleted",
		"id", id,
		"user_id", actor.UserID,
	)

	return item, nil
}

// applyUpdate copies the provided fields of req onto item
func applyUpdate(item *contentModels.ContentItem, req *contentSvc.UpdateContentRequest) {
	setTrimmed := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setTrimmed(&item.Title, req.Title)
	setTrimmed(&item.Institute, req.Institute)
	setTrimmed(&item.Subject, req.Subject)
	setTrimmed(&item.Chapter, req.Chapter)
	setTrimmed(&item.Topic, req.Topic)

	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.URL != nil {
		item.URL = normalizeOptional(req.URL)
	}
	if req.Body != nil {
		item.Body = normalizeOptional(req.Body)
	}
}

// normalizeOptional trims value and maps empty strings to nil
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateFilter(filter contentModels.Filter) error {
	if filter.Type != "" && !filter.Type.IsValid() {
		return fieldError("type", fmt.Sprintf("must be one of %v", contentModels.ContentTypes))
	}
	return nil
}
