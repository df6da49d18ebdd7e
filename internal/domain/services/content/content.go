package content

import (
	"context"

	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
)

// CreateContentRequest represents a request to register a content item
type CreateContentRequest struct {
	Actor     models.Actor              `json:"-"`
	Title     string                    `json:"title"`
	Institute string                    `json:"institute"`
	Subject   string                    `json:"subject"`
	Chapter   string                    `json:"chapter"`
	Topic     string                    `json:"topic"`
	Type      contentModels.ContentType `json:"type"`
	URL       *string                   `json:"url"`
	Body      *string                   `json:"body"`
}

// UpdateContentRequest represents a partial update; nil fields are left unchanged.
// An empty URL or Body clears the stored value.
type UpdateContentRequest struct {
	Actor     models.Actor               `json:"-"`
	Title     *string                    `json:"title"`
	Institute *string                    `json:"institute"`
	Subject   *string                    `json:"subject"`
	Chapter   *string                    `json:"chapter"`
	Topic     *string                    `json:"topic"`
	Type      *contentModels.ContentType `json:"type"`
	URL       *string                    `json:"url"`
	Body      *string                    `json:"body"`
}

// ContentService defines business logic operations for content items
type ContentService interface {
	// CreateContent validates and stores a new item at the end of its topic
	CreateContent(ctx context.Context, req *CreateContentRequest) (*contentModels.ContentItem, error)

	// GetContent retrieves an item by ID
	GetContent(ctx context.Context, id string) (*contentModels.ContentItem, error)

	// ListContents returns every item passing the filter, in tree order
	ListContents(ctx context.Context, filter contentModels.Filter) ([]contentModels.ContentItem, error)

	// UpdateContent applies a partial update
	UpdateContent(ctx context.Context, id string, req *UpdateContentRequest) (*contentModels.ContentItem, error)

	// DeleteContent soft-deletes an item
	DeleteContent(ctx context.Context, actor models.Actor, id string) (*contentModels.ContentItem, error)
}
