// Package storage defines the Ledger Store contract: durable access to
// users, chats, transactions, participant shares and the derived balance
// snapshot.
package storage

import (
	"context"
	"errors"

	"github.com/AlexaLeb/MoneyShare/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist. Callers
// should match it with errors.Is; everything else coming out of a Store is a
// storage failure that must roll the surrounding operation back.
var ErrNotFound = errors.New("not found")

// Store is the interface the ledger engine consumes. This abstraction allows
// swapping storage backends (SQLite, PostgreSQL, etc.) without changing the
// service layer.
type Store interface {
	// CreateUser inserts a user. A zero ID asks the store to assign one.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByUsername retrieves a user by their unique handle.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUser overwrites the user's mutable display fields.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateChat inserts a chat with its external id.
	CreateChat(ctx context.Context, chat *models.Chat) error

	// GetChat retrieves a chat by id.
	GetChat(ctx context.Context, id int64) (*models.Chat, error)

	// UpdateChat overwrites the chat's title.
	UpdateChat(ctx context.Context, chat *models.Chat) error

	// CreateTransaction persists a new transaction. ID and CreatedAt are
	// assigned by the store when unset.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by id, deleted or not.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListActiveTransactions returns the chat's non-deleted transactions in
	// creation order.
	ListActiveTransactions(ctx context.Context, chatID int64) ([]*models.Transaction, error)

	// SoftDeleteTransaction marks a transaction deleted. Its shares must have
	// been removed beforehand; the store does not cascade.
	SoftDeleteTransaction(ctx context.Context, id string) error

	// CreateShare persists a participant share. ID is assigned when unset.
	CreateShare(ctx context.Context, share *models.ParticipantShare) error

	// GetShare retrieves a share by id.
	GetShare(ctx context.Context, id string) (*models.ParticipantShare, error)

	// ListShares returns all shares of a transaction in creation order.
	ListShares(ctx context.Context, transactionID string) ([]*models.ParticipantShare, error)

	// DeleteShare removes a single share.
	DeleteShare(ctx context.Context, id string) error

	// DeleteSharesByTransaction removes every share of a transaction and
	// returns how many were deleted.
	DeleteSharesByTransaction(ctx context.Context, transactionID string) (int64, error)

	// GetBalance retrieves one member's balance row.
	GetBalance(ctx context.Context, chatID, userID int64) (*models.Balance, error)

	// UpsertBalance creates or overwrites one member's balance row.
	UpsertBalance(ctx context.Context, chatID, userID int64, amount float64) (*models.Balance, error)

	// UpsertBalances applies a whole rebuilt snapshot in a single storage
	// transaction: either every row is written or none is, so a failure
	// leaves the previous snapshot intact. Rows for members absent from
	// amounts are left untouched.
	UpsertBalances(ctx context.Context, chatID int64, amounts map[int64]float64) error

	// ListBalances returns the chat's balance rows in the order the members
	// first appeared, which the settlement planner relies on for its queue
	// ordering.
	ListBalances(ctx context.Context, chatID int64) ([]*models.Balance, error)

	// Close releases any resources held by the store.
	Close() error
}
