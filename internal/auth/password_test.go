package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// memoryUserStore is a minimal in-memory UserStore for authenticator tests.
type memoryUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[int64]*models.User)}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryUserStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUserStore())
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "Alice", "s3cret-password")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user id to be assigned")
	}
	if user.PasswordHash == "s3cret-password" {
		t.Error("Password stored in plain text")
	}

	got, err := a.Authenticate(ctx, "alice", "s3cret-password")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticated user id = %d, want %d", got.ID, user.ID)
	}

	if _, err := a.Authenticate(ctx, "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "nobody", "s3cret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUserStore())
	ctx := context.Background()

	if _, err := a.Register(ctx, "", "Alice", "s3cret-password"); !errors.Is(err, ErrUsernameRequired) {
		t.Errorf("empty username: error = %v, want ErrUsernameRequired", err)
	}
	if _, err := a.Register(ctx, "alice", "Alice", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("short password: error = %v, want ErrWeakPassword", err)
	}

	if _, err := a.Register(ctx, "alice", "Alice", "s3cret-password"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := a.Register(ctx, "alice", "Other", "another-password"); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate username: error = %v, want ErrUsernameExists", err)
	}
}

func TestAuthenticateProvisionedOnlyUser(t *testing.T) {
	store := newMemoryUserStore()
	a := NewPasswordAuthenticator(store)
	ctx := context.Background()

	// A member created by chat provisioning has no password hash and must
	// not be able to log in.
	if err := store.CreateUser(ctx, &models.User{ID: 5, Username: "ghost"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := a.Authenticate(ctx, "ghost", "whatever-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}
