package repository

import (
	"context"
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTaskRepository creates a new TaskRepository with a per-query deadline
func NewTaskRepository(db *gorm.DB, timeout time.Duration) TaskRepository {
	return &GormTaskRepository{db: db, timeout: timeout}
}

func (r *GormTaskRepository) withDeadline(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

// Create persists a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	db, cancel := r.withDeadline(ctx)
	defer cancel()
	return db.Create(task).Error
}

// FindByTaskID finds a task by its public ID
func (r *GormTaskRepository) FindByTaskID(ctx context.Context, taskID string) (*models.Task, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	var task models.Task
	if err := db.Where("task_id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks scoped to one organization, conjunctively narrowed
// by any set filter, left-joined with users so the assignee's display name
// comes back in the same round trip.
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.TaskWithAssignee, error) {
	db, cancel := r.withDeadline(ctx)
	defer cancel()

	query := db.Model(&models.Task{}).
		Select("tasks.*, users.first_name AS assignee_first_name, users.last_name AS assignee_last_name").
		Joins("LEFT JOIN users ON users.user_id = tasks.assignee").
		Where("tasks.organization_id = ?", filter.OrganizationID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Assignee != nil {
		query = query.Where("tasks.assignee = ?", *filter.Assignee)
	}
	if filter.DueDate != nil {
		query = query.Where("tasks.due_date = ?", *filter.DueDate)
	}

	rows := []models.TaskWithAssignee{}
	if err := query.Order("tasks.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves a modified task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	db, cancel := r.withDeadline(ctx)
	defer cancel()
	return db.Save(task).Error
}

// Delete removes a task by its public ID
func (r *GormTaskRepository) Delete(ctx context.Context, taskID string) error {
	db, cancel := r.withDeadline(ctx)
	defer cancel()
	return db.Where("task_id = ?", taskID).Delete(&models.Task{}).Error
}
