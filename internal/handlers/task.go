package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/dto"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task in the caller's organization.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title          string  `json:"task" binding:"required"`
		Assignee       *string `json:"assignee"`
		OrganizationID string  `json:"organizationId"`
		Priority       string  `json:"priority" binding:"required"`
		Status         string  `json:"status"`
		DueDate        string  `json:"dueDate" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// The wire format carries organizationId, but the token decides the
	// tenant: a mismatch is rejected rather than honored.
	if req.OrganizationID != "" && req.OrganizationID != actor.OrganizationID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Title:    req.Title,
		Assignee: req.Assignee,
		Priority: models.TaskPriority(req.Priority),
		Status:   models.TaskStatus(req.Status),
		DueDate:  req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the caller's organization tasks, filtered by any of
// status, priority, assignee, and dueDate.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if orgID := c.Query("organizationId"); orgID != "" && orgID != actor.OrganizationID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	rows, err := h.taskService.ListTasks(c.Request.Context(), actor, services.ListTasksInput{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Assignee: c.Query("assignee"),
		DueDate:  c.Query("dueDate"),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListItemDTOs(rows))
}

// GetTask returns a specific task by its public ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), actor, c.Param("taskId"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateTaskRequest struct {
		Title    *string `json:"task"`
		Assignee *string `json:"assignee"`
		Priority *string `json:"priority"`
		Status   *string `json:"status"`
		DueDate  *string `json:"dueDate"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:    req.Title,
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, c.Param("taskId"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actor, c.Param("taskId")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrAssigneeNotInOrg):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTaskAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.ServiceUnavailable(c, "")
	default:
		log.Printf("task handler: %v", err)
		apierrors.InternalError(c, "")
	}
}
