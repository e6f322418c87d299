package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// TaskRepository persists tasks. Every operation that touches an existing row
// matches on both the task id and the owning user id in a single statement,
// so an unowned id is indistinguishable from a missing one and there is no
// check-then-write gap.
type TaskRepository interface {
	// List returns the user's tasks ordered by creation time, newest first.
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update applies only the fields present in the patch. Zero matched rows
	// yield domain.ErrTaskNotFound.
	Update(ctx context.Context, userID, id string, patch domain.TaskPatch) error
	// Delete removes the task. Zero matched rows yield domain.ErrTaskNotFound.
	Delete(ctx context.Context, userID, id string) error
}
