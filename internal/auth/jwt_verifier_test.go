package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestVerifier(t *testing.T) (*JWKSVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newVerifier(keyFunc, nil, logger), key
}

func signClaims(t *testing.T, key *ecdsa.PrivateKey, claims *models.AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() *models.AuthClaims {
	return &models.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "6b0f5f8e-1f7a-4c55-9a0e-3c1d2b7a9e01",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role:        "authenticated",
		AppMetadata: map[string]interface{}{"role": "teacher"},
	}
}

func TestVerifyToken_Valid(t *testing.T) {
	verifier, key := newTestVerifier(t)

	claims, err := verifier.VerifyToken(signClaims(t, key, validClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.GetUserID() != "6b0f5f8e-1f7a-4c55-9a0e-3c1d2b7a9e01" {
		t.Errorf("unexpected subject %q", claims.GetUserID())
	}
	if claims.UserRole() != models.RoleTeacher {
		t.Errorf("expected teacher role, got %q", claims.UserRole())
	}
}

func TestVerifyToken_Rejected(t *testing.T) {
	verifier, key := newTestVerifier(t)
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
		},
		{
			name: "expired",
			token: func() string {
				c := validClaims()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return signClaims(t, key, c)
			},
		},
		{
			name: "no expiry",
			token: func() string {
				c := validClaims()
				c.ExpiresAt = nil
				return signClaims(t, key, c)
			},
		},
		{
			name: "missing subject",
			token: func() string {
				c := validClaims()
				c.Subject = ""
				return signClaims(t, key, c)
			},
		},
		{
			name: "anonymous role",
			token: func() string {
				c := validClaims()
				c.Role = "anon"
				return signClaims(t, key, c)
			},
		},
		{
			name:  "wrong key",
			token: func() string { return signClaims(t, otherKey, validClaims()) },
		},
		{
			name: "disallowed algorithm",
			token: func() string {
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
				if err != nil {
					t.Fatalf("sign token: %v", err)
				}
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := verifier.VerifyToken(tt.token()); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestNewJWTVerifier_EmptyURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := NewJWTVerifier("", logger); err == nil {
		t.Error("expected error for empty JWKS URL")
	}
}

func TestAuthClaims_UserRoleDefaults(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]interface{}
		want     models.Role
	}{
		{"missing metadata", nil, models.RoleStudent},
		{"admin", map[string]interface{}{"role": "admin"}, models.RoleAdmin},
		{"unknown role", map[string]interface{}{"role": "principal"}, models.RoleStudent},
		{"non-string role", map[string]interface{}{"role": 7}, models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &models.AuthClaims{AppMetadata: tt.metadata}
			if got := claims.UserRole(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
