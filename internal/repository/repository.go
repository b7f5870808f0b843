package repository

import (
	"context"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// UserRepository defines the interface for user data access. Every method
// observes the per-call store deadline via the supplied context.
type UserRepository interface {
	// Create persists a new user. The email uniqueness constraint is
	// enforced at the storage layer.
	Create(ctx context.Context, user *models.User) error

	// FindByEmail finds a user by normalized email address
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// ListByOrganization lists all users of an organization
	ListByOrganization(ctx context.Context, organizationID string) ([]models.User, error)

	// CountByOrganization counts the users carrying an organization ID
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)

	// ExistsInOrganization reports whether a user with the given public ID
	// belongs to the organization
	ExistsInOrganization(ctx context.Context, userID, organizationID string) (bool, error)
}

// TaskFilter holds filtering options for listing tasks. OrganizationID is
// mandatory; there is no way to list across tenants.
type TaskFilter struct {
	OrganizationID string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	Assignee       *string
	DueDate        *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByTaskID finds a task by its public ID
	FindByTaskID(ctx context.Context, taskID string) (*models.Task, error)

	// List retrieves tasks matching the filter, joined with the assignee's
	// display name
	List(ctx context.Context, filter TaskFilter) ([]models.TaskWithAssignee, error)

	// Update saves a modified task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task by its public ID
	Delete(ctx context.Context, taskID string) error
}
