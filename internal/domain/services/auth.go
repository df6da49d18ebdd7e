package services

import (
	"context"

	"learnhub/internal/domain/models"
)

// ContentAuthorizer checks if a user can change the content library.
// Services call the authorizer before writing; reads are open to every
// authenticated user.
type ContentAuthorizer interface {
	// CanManageContent allows creating, editing, deleting and reordering content
	CanManageContent(ctx context.Context, actor models.Actor) error
}
