package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/core/domain"
	"github.com/donelist/task-service/internal/core/ports"
	"github.com/donelist/task-service/internal/pkg/hashing"
)

const minPasswordLength = 8

// UserService implements registration and login.
type UserService struct {
	repo   ports.UserRepository
	tokens *TokenService
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens *TokenService, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, log: log}
}

// Register creates a new account. The password policy is enforced as a hard
// stop, and username/email uniqueness are checked in that order; the first
// conflicting field wins.
func (s *UserService) Register(ctx context.Context, username, email, rawPassword string) (string, error) {
	if username == "" || email == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := validatePassword(rawPassword); err != nil {
		return "", err
	}

	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if exists {
		return "", domain.ErrUsernameTaken
	}

	exists, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if exists {
		return "", domain.ErrEmailTaken
	}

	hash, err := hashing.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	id, err := s.repo.Insert(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", username).Str("user_id", id).Msg("user registered")
	return id, nil
}

// Authenticate verifies the credentials and returns the account. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, rawPassword string) (*domain.User, error) {
	if username == "" || rawPassword == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := hashing.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login composes Authenticate and token issuance, using the authenticated
// user's id as subject.
func (s *UserService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.Authenticate(ctx, username, rawPassword)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("session issued")
	return token, nil
}

// validatePassword enforces the minimum policy: at least minPasswordLength
// characters with at least one letter and one digit.
func validatePassword(rawPassword string) error {
	if len(rawPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range rawPassword {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.ErrWeakPassword
	}
	return nil
}
