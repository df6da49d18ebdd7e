package models

import "github.com/golang-jwt/jwt/v5"

// Role is the dashboard role of an authenticated user
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// AuthClaims represents the JWT claims issued by the identity provider.
type AuthClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	AppMetadata          map[string]interface{} `json:"app_metadata"`
	SessionID            string                 `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}

// UserRole reads the dashboard role from app_metadata, defaulting to student
func (c *AuthClaims) UserRole() Role {
	raw, _ := c.AppMetadata["role"].(string)
	switch Role(raw) {
	case RoleTeacher, RoleAdmin:
		return Role(raw)
	default:
		return RoleStudent
	}
}

// Actor is the user a service call runs on behalf of
type Actor struct {
	UserID string
	Role   Role
}

// CanManageContent reports whether the actor may create, edit, delete or reorder content
func (a Actor) CanManageContent() bool {
	return a.Role == RoleTeacher || a.Role == RoleAdmin
}
