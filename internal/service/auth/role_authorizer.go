package auth

import (
	"context"
	"fmt"

	"learnhub/internal/domain"
	"learnhub/internal/domain/models"
	"learnhub/internal/domain/services"
)

// RoleBasedAuthorizer implements ContentAuthorizer using the role carried in
// the user's token. Teachers and admins manage content; students only read.
type RoleBasedAuthorizer struct{}

// NewRoleBasedAuthorizer creates a new role-based authorizer
func NewRoleBasedAuthorizer() services.ContentAuthorizer {
	return &RoleBasedAuthorizer{}
}

// CanManageContent rejects anonymous actors and students
func (a *RoleBasedAuthorizer) CanManageContent(_ context.Context, actor models.Actor) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !actor.CanManageContent() {
		return fmt.Errorf("role %q cannot manage content: %w", actor.Role, domain.ErrForbidden)
	}
	return nil
}
