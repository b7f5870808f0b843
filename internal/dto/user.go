package dto

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// UserDTO is the sanitized user projection: every stored attribute except
// the internal numeric id and the password hash.
type UserDTO struct {
	UserID         string          `json:"userId"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	EmailAddress   string          `json:"emailAddress"`
	OrganizationID string          `json:"organizationId"`
	Role           models.UserRole `json:"role"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		UserID:         user.UserID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		EmailAddress:   user.EmailAddress,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users to sanitized projections.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
