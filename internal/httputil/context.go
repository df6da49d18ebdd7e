package httputil

import (
	"context"
	"net/http"

	"learnhub/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userRoleKey  contextKey = "userRole"
	requestIDKey contextKey = "requestID"
)

// WithUser adds the authenticated user's id and role to the request context
func WithUser(r *http.Request, userID string, role models.Role) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetActor returns the authenticated user as a service actor.
// Requests without a role are treated as students.
func GetActor(r *http.Request) models.Actor {
	role, ok := r.Context().Value(userRoleKey).(models.Role)
	if !ok {
		role = models.RoleStudent
	}
	return models.Actor{UserID: GetUserID(r), Role: role}
}

// WithRequestID adds the request id to the request context
func WithRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))
}

// GetRequestID retrieves the request id, returns empty string if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
