package content

import (
	"context"

	contentModels "learnhub/internal/domain/models/content"
)

// ToggleResult reports the state of a node after a toggle
type ToggleResult struct {
	NodeID   string `json:"node_id"`
	Expanded bool   `json:"expanded"`
}

// TreeService defines operations for building the content hierarchy
type TreeService interface {
	// GetContentTree builds the institute/subject/chapter/topic tree for the
	// filtered items, together with the user's expanded node ids
	GetContentTree(ctx context.Context, userID string, filter contentModels.Filter) (*contentModels.TreeResponse, error)

	// ToggleNode flips the expanded state of one node for the user
	ToggleNode(ctx context.Context, userID, nodeID string) (*ToggleResult, error)
}
