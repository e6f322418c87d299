package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// UseCase validates and executes task operations. The caller identity is the
// scoping key for every store call; a client can never address another
// user's rows.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// CreateInput carries the create form fields after transport-level parsing.
type CreateInput struct {
	Title          string
	Description    *string
	Status         string
	ExpirationDate *time.Time
}

func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, userID)
}

// Create persists a new task owned by userID. The owner is always the
// authenticated caller; any client-supplied owner field never reaches here.
func (uc *UseCase) Create(ctx context.Context, userID string, in CreateInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Title is required")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid status")
	}

	task := &domain.Task{
		UserID:         userID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		ExpirationDate: in.ExpirationDate,
	}
	return uc.tasks.Create(ctx, task)
}

// Update applies the patch to the task iff it exists and belongs to userID.
// An empty title in the patch is treated as absent, so a title is never
// blanked by an update.
func (uc *UseCase) Update(ctx context.Context, userID, id string, patch domain.TaskPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		patch.Title = nil
	}
	if patch.Status != nil {
		if *patch.Status == "" {
			patch.Status = nil
		} else if !domain.ValidStatus(*patch.Status) {
			return domain.NewError(domain.ErrCodeInvalid, "Invalid status")
		}
	}
	return uc.tasks.Update(ctx, userID, id, patch)
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.tasks.Delete(ctx, userID, id)
}
