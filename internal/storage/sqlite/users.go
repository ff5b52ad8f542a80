package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// CreateUser inserts a new user. A zero ID lets SQLite assign the next rowid,
// which is how API-registered users get their identifier; members provisioned
// from chat activity arrive with their external id already set.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	var id interface{}
	if user.ID != 0 {
		id = user.ID
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, first_name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		id, nullable(user.Username), nullable(user.FirstName), nullable(user.PasswordHash), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if user.ID == 0 {
		assigned, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read assigned user id: %w", err)
		}
		user.ID = assigned
	}

	return nil
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var username, firstName, passwordHash sql.NullString

	err := row.Scan(&user.ID, &username, &firstName, &passwordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.Username = username.String
	user.FirstName = firstName.String
	user.PasswordHash = passwordHash.String
	return user, nil
}

// GetUser retrieves a user by id.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, first_name, password_hash, created_at FROM users WHERE id = ?", id)
	return s.scanUser(row)
}

// GetUserByUsername retrieves a user by their handle.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, first_name, password_hash, created_at FROM users WHERE username = ?", username)
	return s.scanUser(row)
}

// UpdateUser overwrites the user's mutable fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, first_name = ?, password_hash = ? WHERE id = ?",
		nullable(user.Username), nullable(user.FirstName), nullable(user.PasswordHash), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateChat inserts a chat with its external id.
func (s *SQLiteStore) CreateChat(ctx context.Context, chat *models.Chat) error {
	if chat.CreatedAt == 0 {
		chat.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chats (id, title, created_at) VALUES (?, ?, ?)",
		chat.ID, nullable(chat.Title), chat.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// GetChat retrieves a chat by id.
func (s *SQLiteStore) GetChat(ctx context.Context, id int64) (*models.Chat, error) {
	chat := &models.Chat{}
	var title sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM chats WHERE id = ?", id,
	).Scan(&chat.ID, &title, &chat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	chat.Title = title.String
	return chat, nil
}

// UpdateChat overwrites the chat's title.
func (s *SQLiteStore) UpdateChat(ctx context.Context, chat *models.Chat) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE chats SET title = ? WHERE id = ?",
		nullable(chat.Title), chat.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check chat update: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
