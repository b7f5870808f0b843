package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"github.com/teamtrackhq/teamtrack-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db      *gorm.DB
	service *AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db, time.Second)
	tokens := token.NewManager("test-secret", time.Hour)
	service := NewAuthService(userRepo, tokens)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		service: service,
	}
}

func signUp(t *testing.T, env authTestEnv, email string, role models.UserRole) *models.User {
	t.Helper()

	user, err := env.service.SignUp(context.Background(), SignUpInput{
		FirstName:    "Test",
		LastName:     "User",
		EmailAddress: email,
		Password:     "supersecret",
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_SignUp(t *testing.T) {
	env := setupAuthTestEnv(t)

	user := signUp(t, env, "Founder@Example.com", models.RoleAdmin)

	require.Equal(t, "founder@example.com", user.EmailAddress)
	require.NotEmpty(t, user.UserID)
	require.NotEmpty(t, user.OrganizationID)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthService_SignUp_NormalizedEmailConflicts(t *testing.T) {
	env := setupAuthTestEnv(t)

	signUp(t, env, "A@b.com", models.RoleAdmin)

	_, err := env.service.SignUp(context.Background(), SignUpInput{
		FirstName:    "Second",
		LastName:     "User",
		EmailAddress: " a@B.COM ",
		Password:     "supersecret",
		Role:         models.RoleUser,
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SignUp_InvalidEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	for _, email := range []string{"not-an-email", "@example.com", "   "} {
		_, err := env.service.SignUp(context.Background(), SignUpInput{
			FirstName:    "Test",
			LastName:     "User",
			EmailAddress: email,
			Password:     "supersecret",
			Role:         models.RoleUser,
		})
		require.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}

	// Padding and casing are stripped before the format check runs.
	signUp(t, env, "  PADDED@example.com  ", models.RoleAdmin)
}

func TestAuthService_SignUp_PasswordTooShort(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.service.SignUp(context.Background(), SignUpInput{
		FirstName:    "Test",
		LastName:     "User",
		EmailAddress: "short@example.com",
		Password:     "tiny",
		Role:         models.RoleUser,
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_SignUp_InvalidRole(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.service.SignUp(context.Background(), SignUpInput{
		FirstName:    "Test",
		LastName:     "User",
		EmailAddress: "role@example.com",
		Password:     "supersecret",
		Role:         models.UserRole("superuser"),
	})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	signUp(t, env, "login@example.com", models.RoleAdmin)

	accessToken, user, err := env.service.Login(context.Background(), LoginInput{
		EmailAddress: " LOGIN@example.com ",
		Password:     "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.Equal(t, "login@example.com", user.EmailAddress)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	env := setupAuthTestEnv(t)
	signUp(t, env, "known@example.com", models.RoleAdmin)

	_, _, wrongPassword := env.service.Login(context.Background(), LoginInput{
		EmailAddress: "known@example.com",
		Password:     "not-the-password",
	})
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, _, unknownUser := env.service.Login(context.Background(), LoginInput{
		EmailAddress: "nobody@example.com",
		Password:     "whatever-pass",
	})
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)

	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_AddTeamMember(t *testing.T) {
	env := setupAuthTestEnv(t)
	founder := signUp(t, env, "founder@example.com", models.RoleAdmin)
	otherFounder := signUp(t, env, "other@example.com", models.RoleAdmin)

	actor := Actor{
		UserID:         founder.UserID,
		OrganizationID: founder.OrganizationID,
		Role:           founder.Role,
	}

	member, err := env.service.AddTeamMember(context.Background(), actor, AddMemberInput{
		FirstName:      "New",
		LastName:       "Member",
		EmailAddress:   "member@example.com",
		Password:       "supersecret",
		OrganizationID: founder.OrganizationID,
		Role:           models.RoleUser,
	})
	require.NoError(t, err)
	require.Equal(t, founder.OrganizationID, member.OrganizationID)

	// Member shows up in the founder's team listing only.
	team, err := env.service.ListTeam(context.Background(), founder.OrganizationID)
	require.NoError(t, err)
	require.Len(t, team, 2)

	otherTeam, err := env.service.ListTeam(context.Background(), otherFounder.OrganizationID)
	require.NoError(t, err)
	require.Len(t, otherTeam, 1)
}

func TestAuthService_AddTeamMember_RequiresAdminOfSameOrg(t *testing.T) {
	env := setupAuthTestEnv(t)
	founder := signUp(t, env, "founder@example.com", models.RoleAdmin)
	other := signUp(t, env, "other@example.com", models.RoleAdmin)

	input := AddMemberInput{
		FirstName:      "New",
		LastName:       "Member",
		EmailAddress:   "member@example.com",
		Password:       "supersecret",
		OrganizationID: founder.OrganizationID,
		Role:           models.RoleUser,
	}

	// Non-admin caller in the right organization.
	_, err := env.service.AddTeamMember(context.Background(), Actor{
		UserID:         founder.UserID,
		OrganizationID: founder.OrganizationID,
		Role:           models.RoleUser,
	}, input)
	require.ErrorIs(t, err, ErrNotOrganizationAdmin)

	// Admin of a different organization.
	_, err = env.service.AddTeamMember(context.Background(), Actor{
		UserID:         other.UserID,
		OrganizationID: other.OrganizationID,
		Role:           models.RoleAdmin,
	}, input)
	require.ErrorIs(t, err, ErrNotOrganizationAdmin)
}

func TestAuthService_AddTeamMember_EmptyOrganization(t *testing.T) {
	env := setupAuthTestEnv(t)

	emptyOrg := "3b6a7c0a-1d2e-4f5a-8b9c-0d1e2f3a4b5c"
	_, err := env.service.AddTeamMember(context.Background(), Actor{
		UserID:         "some-user",
		OrganizationID: emptyOrg,
		Role:           models.RoleAdmin,
	}, AddMemberInput{
		FirstName:      "New",
		LastName:       "Member",
		EmailAddress:   "member@example.com",
		Password:       "supersecret",
		OrganizationID: emptyOrg,
		Role:           models.RoleUser,
	})
	require.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestAuthService_AddTeamMember_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	founder := signUp(t, env, "founder@example.com", models.RoleAdmin)

	_, err := env.service.AddTeamMember(context.Background(), Actor{
		UserID:         founder.UserID,
		OrganizationID: founder.OrganizationID,
		Role:           models.RoleAdmin,
	}, AddMemberInput{
		FirstName:      "Dup",
		LastName:       "Member",
		EmailAddress:   " FOUNDER@example.com",
		Password:       "supersecret",
		OrganizationID: founder.OrganizationID,
		Role:           models.RoleUser,
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}
