package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
	err    error // forced error for every call when set
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	id := fmt.Sprintf("id-%d", r.nextID)
	clone := *user
	clone.ID = id
	r.users[clone.Username] = &clone
	return id, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newUserService(repo *stubUserRepo) *UserService {
	tokens := NewTokenService("test-secret", time.Hour, zerolog.Nop())
	return NewUserService(repo, tokens, zerolog.Nop())
}

func TestUserService_RegisterThenAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	id, err := svc.Register(context.Background(), "alice", "alice@x.com", "Secret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected assigned id")
	}
	if repo.users["alice"].PasswordHash == "Secret123" {
		t.Fatalf("password stored in clear")
	}

	user, err := svc.Authenticate(context.Background(), "alice", "Secret123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != id {
		t.Fatalf("expected id %s, got %s", id, user.ID)
	}
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	cases := []string{"short1", "alllowercase", "12345678", ""}
	for _, pw := range cases {
		if _, err := svc.Register(context.Background(), "bob", "bob@x.com", pw); !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", pw, err)
		}
	}
}

func TestUserService_Register_UsernameConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "Secret123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same username, different email: the username check wins.
	if _, err := svc.Register(context.Background(), "alice", "other@x.com", "Secret123"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Register_EmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "Secret123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "alice2", "alice@x.com", "Secret123"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Authenticate_Uniformity(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), "dave", "dave@x.com", "Goodpass1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown username must fail with the same error kind.
	_, wrongPass := svc.Authenticate(context.Background(), "dave", "badpass99")
	_, wrongUser := svc.Authenticate(context.Background(), "ghost", "Goodpass1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(wrongUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown username: expected ErrInvalidCredentials, got %v", wrongUser)
	}
}

func TestUserService_Login_TokenSubject(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("test-secret", time.Hour, zerolog.Nop())
	svc := NewUserService(repo, tokens, zerolog.Nop())

	id, err := svc.Register(context.Background(), "carol", "carol@x.com", "S3cretpw1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "S3cretpw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	subject, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if subject != id {
		t.Fatalf("expected subject %s, got %s", id, subject)
	}
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "nobody", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Register_StorageError(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("boom")
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), "erin", "erin@x.com", "Secret123")
	if err == nil || errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}
