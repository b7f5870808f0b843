package models

import "time"

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Valid reports whether the priority is one of the known priorities.
func (p TaskPriority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether the status is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Task belongs to exactly one organization. Assignee holds the public
// UserID of the assigned member, nil when unassigned. DueDate is a
// YYYY-MM-DD date string.
type Task struct {
	ID             uint64       `gorm:"primarykey" json:"-"`
	TaskID         string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"taskId"`
	Title          string       `gorm:"column:task;type:varchar(200);not null" json:"task"`
	Assignee       *string      `gorm:"type:varchar(36);index" json:"assignee"`
	OrganizationID string       `gorm:"type:varchar(36);index;not null" json:"organizationId"`
	Priority       TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	DueDate        string       `gorm:"type:varchar(10);not null" json:"dueDate"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// TaskWithAssignee is the read model for task listings: a task row joined
// with the assignee's display name, when the assignee resolves to a user.
type TaskWithAssignee struct {
	Task              `gorm:"embedded"`
	AssigneeFirstName *string
	AssigneeLastName  *string
}
