package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/dto"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
	"github.com/teamtrackhq/teamtrack-api/internal/middleware"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a founding user and their new organization.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		FirstName    string `json:"firstName" binding:"required,min=2,max=50"`
		LastName     string `json:"lastName" binding:"required,min=2,max=50"`
		EmailAddress string `json:"emailAddress" binding:"required"`
		Password     string `json:"password" binding:"required"`
		Role         string `json:"role" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.authService.SignUp(c.Request.Context(), services.SignUpInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
		Role:         models.UserRole(req.Role),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}

// AddTeamMember provisions a user into the caller's organization.
func (h *AuthHandler) AddTeamMember(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddMemberRequest struct {
		FirstName      string `json:"firstName" binding:"required,min=2,max=50"`
		LastName       string `json:"lastName" binding:"required,min=2,max=50"`
		EmailAddress   string `json:"emailAddress" binding:"required"`
		Password       string `json:"password" binding:"required"`
		OrganizationID string `json:"organizationId" binding:"required,uuid"`
		Role           string `json:"role" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.authService.AddTeamMember(c.Request.Context(), actor, services.AddMemberInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		EmailAddress:   req.EmailAddress,
		Password:       req.Password,
		OrganizationID: req.OrganizationID,
		Role:           models.UserRole(req.Role),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}

// Login authenticates a user and returns a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		EmailAddress string `json:"emailAddress" binding:"required"`
		Password     string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	accessToken, user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"user":         dto.ToUserDTO(*user),
	})
}

// ListTeam returns the sanitized members of the caller's organization.
func (h *AuthHandler) ListTeam(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	organizationID := c.Param("organizationId")
	if organizationID != actor.OrganizationID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	users, err := h.authService.ListTeam(c.Request.Context(), organizationID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// currentActor converts verified token claims into a service actor.
func currentActor(c *gin.Context) (services.Actor, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{
		UserID:         claims.Subject,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
	}, true
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.ServiceUnavailable(c, "")
	default:
		log.Printf("auth handler: %v", err)
		apierrors.InternalError(c, "")
	}
}
