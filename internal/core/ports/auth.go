package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// TokenVerifier checks a bearer token and returns the subject id it asserts.
// Any verification failure surfaces as domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ActivityRecorder accepts task activity for asynchronous persistence.
// Recording must never block or fail the user-facing operation.
type ActivityRecorder interface {
	Record(entry domain.TaskActivity)
}

// ActivityProcessor persists a single activity entry; implemented by the
// activity service and driven by the queue dispatcher workers.
type ActivityProcessor interface {
	Process(ctx context.Context, entry domain.TaskActivity) error
}
