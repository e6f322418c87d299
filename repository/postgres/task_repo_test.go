package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/backend/domain"
)

func strPtr(s string) *string { return &s }

func TestTaskRepository_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()
	now := time.Now()

	cols := []string{"id", "user_id", "title", "description", "status", "expiration_date", "created_at", "updated_at"}

	mock.ExpectQuery(`SELECT id, user_id, title, description, status, expiration_date, created_at, updated_at FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("t2", "u1", "newer", strPtr("x"), domain.StatusPending, nil, now, now).
			AddRow("t1", "u1", "older", nil, domain.StatusDone, nil, now.Add(-time.Hour), now))
	tasks, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "t2", tasks[0].ID)
	require.Nil(t, tasks[1].Description)

	// No rows is an empty slice, not nil.
	mock.ExpectQuery(`SELECT id, user_id, title, description, status, expiration_date, created_at, updated_at FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u2").
		WillReturnRows(pgxmock.NewRows(cols))
	tasks, err = r.List(ctx, "u2")
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()
	now := time.Now()

	task := &domain.Task{UserID: "u1", Title: "Buy milk", Status: domain.StatusPending}

	mock.ExpectQuery(`INSERT INTO tasks \(id, user_id, title, description, status, expiration_date\)`).
		WithArgs(pgxmock.AnyArg(), "u1", "Buy milk", (*string)(nil), domain.StatusPending, (*time.Time)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := r.Create(ctx, task)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, now, created.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_PartialFields(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()

	// Only title and status present: description column untouched.
	mock.ExpectExec(`UPDATE tasks SET updated_at = NOW\(\), title = \$3, status = \$4 WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "u1", "y", domain.StatusDone).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	err := r.Update(ctx, "u1", "t1", domain.TaskPatch{
		Title:  strPtr("y"),
		Status: strPtr(domain.StatusDone),
	})
	require.NoError(t, err)

	// Explicitly clearing description sends a NULL.
	mock.ExpectExec(`UPDATE tasks SET updated_at = NOW\(\), description = \$3 WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "u1", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	err = r.Update(ctx, "u1", "t1", domain.TaskPatch{DescriptionSet: true})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotOwnedOrMissing(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE tasks SET updated_at = NOW\(\), title = \$3 WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "intruder", "y").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := r.Update(ctx, "intruder", "t1", domain.TaskPatch{Title: strPtr("y")})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_EmptyPatch(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("t1"))
	require.NoError(t, r.Update(ctx, "u1", "t1", domain.TaskPatch{}))

	mock.ExpectQuery(`SELECT id FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs("ghost", "u1").
		WillReturnError(pgx.ErrNoRows)
	require.ErrorIs(t, r.Update(ctx, "u1", "ghost", domain.TaskPatch{}), domain.ErrTaskNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "u1", "t1"))

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "someone-else").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "someone-else", "t1"), domain.ErrTaskNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
