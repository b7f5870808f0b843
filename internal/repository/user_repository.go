package repository

import (
	"context"
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserRepository creates a new UserRepository with a per-query deadline
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &GormUserRepository{db: db, timeout: timeout}
}

func (r *GormUserRepository) withDeadline(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

// Create persists a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	db, cancel := r.withDeadline(ctx)
	defer cancel()
	return db.Create(user).Error
}

// FindByEmail finds a user by normalized email address
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("email_address = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByOrganization lists all users of an organization
func (r *GormUserRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.User, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	var users []models.User
	if err := db.Where("organization_id = ?", organizationID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByOrganization counts the users carrying an organization ID
func (r *GormUserRepository) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.User{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// ExistsInOrganization reports whether a user belongs to the organization
func (r *GormUserRepository) ExistsInOrganization(ctx context.Context, userID, organizationID string) (bool, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.User{}).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Count(&count).Error
	return count > 0, err
}
