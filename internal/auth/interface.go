package auth

import "learnhub/internal/domain/models"

// JWTVerifier validates bearer tokens for the auth middleware.
type JWTVerifier interface {
	// VerifyToken parses and validates a JWT and returns its claims.
	// Any failure is reported as domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.AuthClaims, error)

	// Close stops background key refreshes.
	Close() error
}
