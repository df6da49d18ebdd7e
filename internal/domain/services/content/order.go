package content

import (
	"context"

	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
)

// ReorderRequest sets the complete order of a topic's items
type ReorderRequest struct {
	Actor models.Actor            `json:"-"`
	Path  contentModels.TopicPath `json:"path"`
	IDs   []string                `json:"ids"`
}

// MoveRequest moves one row of a topic's order table, as a drag and drop does.
// From and To are required; nil means the field was missing from the request.
type MoveRequest struct {
	Actor models.Actor            `json:"-"`
	Path  contentModels.TopicPath `json:"path"`
	From  *int                    `json:"from"`
	To    *int                    `json:"to"`
}

// OrderService defines operations on the order of items inside a topic
type OrderService interface {
	// Reorder persists a full ordering; ids must be exactly the topic's items
	Reorder(ctx context.Context, req *ReorderRequest) ([]contentModels.ContentItem, error)

	// Move relocates the item at index From to index To
	Move(ctx context.Context, req *MoveRequest) ([]contentModels.ContentItem, error)
}
