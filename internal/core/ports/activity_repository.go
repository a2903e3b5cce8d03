package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// ActivityRepository defines persistence operations for the task audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.TaskActivity) error
	// ListByTask returns the activity of a single task in chronological
	// order, scoped by owner like every other task read.
	ListByTask(ctx context.Context, taskID, ownerID string) ([]*domain.TaskActivity, error)
}
