package ports

import (
	"context"

	"github.com/donelist/task-service/internal/core/domain"
)

// UserService defines the registration and session use-cases.
type UserService interface {
	// Register creates a new account and returns its id. Fails with
	// domain.ErrUsernameTaken / domain.ErrEmailTaken on conflicts and
	// domain.ErrWeakPassword when the password policy is violated.
	Register(ctx context.Context, username, email, rawPassword string) (string, error)
	// Authenticate verifies username+password and returns the account.
	// Unknown username and wrong password fail identically with
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, rawPassword string) (*domain.User, error)
	// Login authenticates and returns a signed bearer token for the user.
	Login(ctx context.Context, username, rawPassword string) (string, error)
}
