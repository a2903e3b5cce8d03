package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// TaskUpdate carries a partial update. Nil fields are left untouched; only
// the fields a caller explicitly supplies are merged into the stored task.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// TaskService defines the owner-scoped task use-cases. Every method takes the
// resolved owner id as a mandatory parameter; there is no way to reach a task
// without naming its owner.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description string) (string, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// Update merges the supplied fields into the stored task and reports
	// whether storage modified a record. Re-writing identical values
	// reports false.
	Update(ctx context.Context, id, ownerID string, update TaskUpdate) (bool, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	// ListActivity returns the audit trail of an owned task.
	ListActivity(ctx context.Context, id, ownerID string) ([]*domain.TaskActivity, error)
}
