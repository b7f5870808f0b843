package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db, time.Second), mock
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "task_id", "task", "assignee", "organization_id",
		"priority", "status", "due_date", "created_at", "updated_at",
		"assignee_first_name", "assignee_last_name",
	})
}

func TestTaskRepository_List_JoinsAssigneeNames(t *testing.T) {
	repo, mock := setupMockRepo(t)

	orgID := "org-1"
	firstName := "Ada"
	lastName := "Lovelace"
	assignee := "user-1"

	mock.ExpectQuery(`SELECT tasks\.\*, users\.first_name AS assignee_first_name, users\.last_name AS assignee_last_name FROM "tasks" LEFT JOIN users ON users\.user_id = tasks\.assignee WHERE tasks\.organization_id = \$1 ORDER BY tasks\.created_at DESC`).
		WithArgs(orgID).
		WillReturnRows(taskRows().
			AddRow(1, "task-1", "Ship release notes", assignee, orgID,
				"high", "In Progress", "2026-09-30", time.Now(), time.Now(),
				firstName, lastName).
			AddRow(2, "task-2", "Audit permissions", nil, orgID,
				"low", "To Do", "2026-10-15", time.Now(), time.Now(),
				nil, nil))

	rows, err := repo.List(context.Background(), TaskFilter{OrganizationID: orgID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Ship release notes", rows[0].Title)
	require.NotNil(t, rows[0].AssigneeFirstName)
	require.Equal(t, firstName, *rows[0].AssigneeFirstName)
	require.Equal(t, lastName, *rows[0].AssigneeLastName)

	require.Nil(t, rows[1].Assignee)
	require.Nil(t, rows[1].AssigneeFirstName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_List_ConjunctiveFilters(t *testing.T) {
	repo, mock := setupMockRepo(t)

	orgID := "org-1"
	status := models.StatusDone
	priority := models.PriorityHigh

	mock.ExpectQuery(`WHERE tasks\.organization_id = \$1 AND tasks\.status = \$2 AND tasks\.priority = \$3`).
		WithArgs(orgID, string(status), string(priority)).
		WillReturnRows(taskRows())

	rows, err := repo.List(context.Background(), TaskFilter{
		OrganizationID: orgID,
		Status:         &status,
		Priority:       &priority,
	})
	require.NoError(t, err)
	require.Empty(t, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_ScopedByTaskID(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE task_id = \$1`).
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "task-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
