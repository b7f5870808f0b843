package dto

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	TaskID         string              `json:"taskId"`
	Title          string              `json:"task"`
	Assignee       *string             `json:"assignee"`
	OrganizationID string              `json:"organizationId"`
	Priority       models.TaskPriority `json:"priority"`
	Status         models.TaskStatus   `json:"status"`
	DueDate        string              `json:"dueDate"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// TaskListItemDTO is a task in list responses, carrying the assignee's
// display name resolved by the store-side join.
type TaskListItemDTO struct {
	TaskDTO
	AssigneeFirstName *string `json:"assigneeFirstName"`
	AssigneeLastName  *string `json:"assigneeLastName"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		TaskID:         task.TaskID,
		Title:          task.Title,
		Assignee:       task.Assignee,
		OrganizationID: task.OrganizationID,
		Priority:       task.Priority,
		Status:         task.Status,
		DueDate:        task.DueDate,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskListItemDTO converts a joined task row to TaskListItemDTO
func ToTaskListItemDTO(row models.TaskWithAssignee) TaskListItemDTO {
	return TaskListItemDTO{
		TaskDTO:           ToTaskDTO(row.Task),
		AssigneeFirstName: row.AssigneeFirstName,
		AssigneeLastName:  row.AssigneeLastName,
	}
}

// ToTaskListItemDTOs converts a slice of joined task rows.
func ToTaskListItemDTOs(rows []models.TaskWithAssignee) []TaskListItemDTO {
	items := make([]TaskListItemDTO, len(rows))
	for i, row := range rows {
		items[i] = ToTaskListItemDTO(row)
	}
	return items
}
