package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		UserID:         "6f1e1cbb-9e5d-4b53-a0cd-6f6a1a3c0f01",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		EmailAddress:   "ada@example.com",
		OrganizationID: "0b7b5a0e-3c47-4a8b-9b1d-2f4f9f6f2a11",
		Role:           models.RoleAdmin,
	}
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", 24*time.Hour)
	user := testUser()

	raw, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, user.UserID, claims.Subject)
	require.Equal(t, user.EmailAddress, claims.EmailAddress)
	require.Equal(t, user.OrganizationID, claims.OrganizationID)
	require.Equal(t, user.Role, claims.Role)
}

func TestManager_VerifyExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	raw, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = m.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	raw, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
