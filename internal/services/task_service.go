package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/teamtrackhq/teamtrack-api/internal/constants"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTitle     = fmt.Errorf("task must be between %d and %d characters", constants.MinTitleLength, constants.MaxTitleLength)
	ErrInvalidPriority  = errors.New("priority must be one of: high, medium, low")
	ErrInvalidStatus    = errors.New("status must be one of: To Do, In Progress, Done")
	ErrInvalidDueDate   = errors.New("dueDate must be a YYYY-MM-DD date")
	ErrAssigneeNotInOrg = errors.New("assignee is not a member of the organization")
	ErrNotTaskAdmin     = errors.New("only an admin can delete tasks")
	ErrFailedToSaveTask = errors.New("failed to save task")
)

// TaskService handles task business logic. Every operation is scoped to
// the organization carried by the verified actor; a task in another
// organization is indistinguishable from a missing one.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title    string
	Assignee *string
	Priority models.TaskPriority
	Status   models.TaskStatus
	DueDate  string
}

// CreateTask validates and persists a new task in the actor's organization
func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input CreateTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.StatusTodo
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	assignee, err := s.resolveAssignee(ctx, input.Assignee, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		TaskID:         uuid.NewString(),
		Title:          input.Title,
		Assignee:       assignee,
		OrganizationID: actor.OrganizationID,
		Priority:       input.Priority,
		Status:         input.Status,
		DueDate:        input.DueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSaveTask, err)
	}

	return task, nil
}

// ListTasksInput represents optional filters for listing tasks. Empty
// values place no restriction on that field.
type ListTasksInput struct {
	Status   string
	Priority string
	Assignee string
	DueDate  string
}

// ListTasks returns the actor's organization tasks narrowed by any set
// filter, each joined with the assignee's display name. No matches yields
// an empty slice, not an error.
func (s *TaskService) ListTasks(ctx context.Context, actor Actor, input ListTasksInput) ([]models.TaskWithAssignee, error) {
	filter := repository.TaskFilter{
		OrganizationID: actor.OrganizationID,
	}

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		filter.Priority = &priority
	}
	if input.Assignee != "" {
		filter.Assignee = &input.Assignee
	}
	if input.DueDate != "" {
		if err := validateDueDate(input.DueDate); err != nil {
			return nil, err
		}
		filter.DueDate = &input.DueDate
	}

	rows, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return rows, nil
}

// GetTask returns a task in the actor's organization
func (s *TaskService) GetTask(ctx context.Context, actor Actor, taskID string) (*models.Task, error) {
	return s.findScoped(ctx, actor, taskID)
}

// UpdateTaskInput represents a partial task update; only non-nil fields
// change. An empty assignee string clears the assignment.
type UpdateTaskInput struct {
	Title    *string
	Assignee *string
	Priority *models.TaskPriority
	Status   *models.TaskStatus
	DueDate  *string
}

// UpdateTask applies a partial update to a task in the actor's organization
func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findScoped(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		if err := validateDueDate(*input.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = *input.DueDate
	}
	if input.Assignee != nil {
		assignee, err := s.resolveAssignee(ctx, input.Assignee, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		task.Assignee = assignee
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToSaveTask, err)
	}

	return task, nil
}

// DeleteTask removes a task in the actor's organization. Deletion is
// admin-gated server-side, not just in the client.
func (s *TaskService) DeleteTask(ctx context.Context, actor Actor, taskID string) error {
	if actor.Role != models.RoleAdmin {
		return ErrNotTaskAdmin
	}

	if _, err := s.findScoped(ctx, actor, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// findScoped loads a task and answers ErrTaskNotFound both for missing
// tasks and tasks of other organizations, so existence never leaks across
// tenants.
func (s *TaskService) findScoped(ctx context.Context, actor Actor, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OrganizationID != actor.OrganizationID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// resolveAssignee validates a requested assignee against the organization
// member set. An empty value clears the assignment.
func (s *TaskService) resolveAssignee(ctx context.Context, assignee *string, organizationID string) (*string, error) {
	if assignee == nil || *assignee == "" {
		return nil, nil
	}

	ok, err := s.userRepo.ExistsInOrganization(ctx, *assignee, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}
	if !ok {
		return nil, ErrAssigneeNotInOrg
	}
	return assignee, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < constants.MinTitleLength || length > constants.MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateDueDate(dueDate string) error {
	if _, err := time.Parse(constants.DueDateLayout, dueDate); err != nil {
		return ErrInvalidDueDate
	}
	return nil
}
