package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"github.com/teamtrackhq/teamtrack-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already exists")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidCredentials   = errors.New("Invalid Credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrOrganizationNotFound = errors.New("organization does not exist")
	ErrNotOrganizationAdmin = errors.New("only an organization admin can perform this action")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Actor identifies the verified caller of an operation. Values come from
// token claims, never from request bodies.
type Actor struct {
	UserID         string
	OrganizationID string
	Role           models.UserRole
}

// AuthService handles signup, team provisioning, and login.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignUpInput represents the required information to create a founding user.
type SignUpInput struct {
	FirstName    string
	LastName     string
	EmailAddress string
	Password     string
	Role         models.UserRole
}

// SignUp registers a founding user. A fresh organization ID is minted for
// them; inviting members into it happens through AddTeamMember.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	email := NormalizeEmail(input.EmailAddress)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		UserID:         uuid.NewString(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		EmailAddress:   email,
		PasswordHash:   string(hashed),
		OrganizationID: uuid.NewString(),
		Role:           input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// AddMemberInput represents the information to provision a team member.
type AddMemberInput struct {
	FirstName      string
	LastName       string
	EmailAddress   string
	Password       string
	OrganizationID string
	Role           models.UserRole
}

// AddTeamMember provisions a user into an existing organization. The actor
// must be an admin of that same organization.
func (s *AuthService) AddTeamMember(ctx context.Context, actor Actor, input AddMemberInput) (*models.User, error) {
	if actor.Role != models.RoleAdmin || actor.OrganizationID != input.OrganizationID {
		return nil, ErrNotOrganizationAdmin
	}

	email := NormalizeEmail(input.EmailAddress)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountByOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization: %w", err)
	}
	if count == 0 {
		return nil, ErrOrganizationNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		UserID:         uuid.NewString(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		EmailAddress:   email,
		PasswordHash:   string(hashed),
		OrganizationID: input.OrganizationID,
		Role:           input.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	EmailAddress string
	Password     string
}

// Login verifies credentials and returns a signed access token with the
// authenticated user. Unknown email and wrong password are deliberately
// indistinguishable.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(input.EmailAddress))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return signed, user, nil
}

// ListTeam returns all users of an organization.
func (s *AuthService) ListTeam(ctx context.Context, organizationID string) ([]models.User, error) {
	users, err := s.userRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	return users, nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

// NormalizeEmail trims surrounding whitespace and lowercases an email
// address so addresses differing only in case resolve to one identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailValidator = validator.New()

// validateEmail checks the address format. It runs on the normalized
// value, so padding and casing never fail format checking.
func validateEmail(email string) error {
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
