package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong algorithm, malformed, or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims assert the caller's identity. Organization and role are embedded
// so request handling never needs a user lookup. Subject holds the public
// user ID.
type Claims struct {
	EmailAddress   string          `json:"emailAddress"`
	OrganizationID string          `json:"organizationId"`
	Role           models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies stateless HS256 tokens. The secret is
// resolved once at startup and passed in; validity is purely a function
// of signature and expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given user.
func (m *Manager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		EmailAddress:   user.EmailAddress,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string.
func (m *Manager) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
