package service

import (
	"context"
	"errors"

	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// ProvisionService implements ensure-style provisioning for users and chats:
// create on first sight, softly refresh display fields when they change.
// Every ledger operation runs it first so foreign members and chats exist
// before transactions reference them.
type ProvisionService struct {
	store storage.Store
}

// NewProvisionService creates a ProvisionService on top of the given store.
func NewProvisionService(store storage.Store) *ProvisionService {
	return &ProvisionService{store: store}
}

// EnsureUser creates the user if missing, or updates username/first name if
// new values arrived. Empty incoming fields never erase stored ones.
func (s *ProvisionService) EnsureUser(ctx context.Context, id int64, username, firstName string) (*models.User, error) {
	existing, err := s.store.GetUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		user := &models.User{ID: id, Username: username, FirstName: firstName}
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	needUpdate := false
	if username != "" && existing.Username != username {
		existing.Username = username
		needUpdate = true
	}
	if firstName != "" && existing.FirstName != firstName {
		existing.FirstName = firstName
		needUpdate = true
	}
	if needUpdate {
		if err := s.store.UpdateUser(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

// EnsureChat creates the chat if missing, or refreshes its title when a new
// one arrived.
func (s *ProvisionService) EnsureChat(ctx context.Context, id int64, title string) (*models.Chat, error) {
	existing, err := s.store.GetChat(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		chat := &models.Chat{ID: id, Title: title}
		if err := s.store.CreateChat(ctx, chat); err != nil {
			return nil, err
		}
		return chat, nil
	}
	if err != nil {
		return nil, err
	}

	if title != "" && existing.Title != title {
		existing.Title = title
		if err := s.store.UpdateChat(ctx, existing); err != nil {
			return nil, err
		}
	}
	return existing, nil
}
