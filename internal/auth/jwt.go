// Package auth implements bearer-token authentication: HS256 JWTs carrying
// the account identity, bcrypt password hashing, and the gin middleware
// that gates the API routes.
package auth

import (
	"errors"
	"time"

	"complaintwall/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken means no bearer credential was presented.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken covers malformed, mis-signed and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token payload: subject id plus the display fields the
// original API exposes to clients.
type Claims struct {
	UserID string      `json:"id"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a fixed HS256 secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. The secret must come from
// configuration; ttl is the validity window from issuance.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "complaint-wall",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken parses and validates a raw token string.
func (m *Manager) VerifyToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool { return c.Role == models.RoleAdmin }

// CanAccessComplaint applies the file-access ownership rule: admins see
// everything; a submitter sees their own complaint; anonymous complaints
// (no submitter) are admin-only.
func (c *Claims) CanAccessComplaint(submitterID *string) bool {
	if c.IsAdmin() {
		return true
	}
	return submitterID != nil && *submitterID == c.UserID
}
