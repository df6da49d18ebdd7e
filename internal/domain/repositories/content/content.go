package content

import (
	"context"

	models "learnhub/internal/domain/models/content"
)

// ContentRepository defines data access operations for content items
type ContentRepository interface {
	// Create inserts a new item and fills in its generated ID and timestamps
	Create(ctx context.Context, item *models.ContentItem) error

	// GetByID retrieves a live (not soft-deleted) item
	GetByID(ctx context.Context, id string) (*models.ContentItem, error)

	// List returns every live item. Items are grouped so that each institute,
	// subject, chapter and topic appears in the order it was first created,
	// and items inside a topic are ordered by position.
	List(ctx context.Context) ([]models.ContentItem, error)

	// ListByTopic returns the live items of one topic ordered by position
	ListByTopic(ctx context.Context, path models.TopicPath) ([]models.ContentItem, error)

	// LockTopic serializes position changes inside one topic until the
	// surrounding transaction ends. It must be called inside ExecTx.
	LockTopic(ctx context.Context, path models.TopicPath) error

	// NextPosition returns the position that appends an item to the end of a topic
	NextPosition(ctx context.Context, path models.TopicPath) (int, error)

	// Update writes every mutable field of the item
	Update(ctx context.Context, item *models.ContentItem) error

	// UpdatePosition sets the order of one item inside its topic
	UpdatePosition(ctx context.Context, id string, position int) error

	// Delete soft-deletes an item and returns it with deleted_at set
	Delete(ctx context.Context, id string) (*models.ContentItem, error)
}
