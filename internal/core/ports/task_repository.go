package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks. Every operation
// that touches a specific record takes the owner id and applies it in the
// storage filter together with the task id.
type TaskRepository interface {
	// Insert persists a new task and returns the storage-assigned id.
	Insert(ctx context.Context, task *domain.Task) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	// FindOwned returns the task only when both id and owner match;
	// domain.ErrTaskNotFound otherwise.
	FindOwned(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// Update replaces the mutable fields of the task matching id+owner.
	// The returned flag reports whether storage actually modified a record;
	// writing values identical to the stored ones reports false.
	Update(ctx context.Context, task *domain.Task) (bool, error)
	// Delete removes the task matching id+owner and reports whether exactly
	// one record was removed.
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
