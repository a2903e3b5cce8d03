package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Insert persists a new user and returns the storage-assigned id.
	Insert(ctx context.Context, user *domain.User) (string, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
