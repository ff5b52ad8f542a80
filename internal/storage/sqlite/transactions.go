package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// CreateTransaction persists a new transaction, assigning ID and CreatedAt
// when unset.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (id, chat_id, creator_id, amount, title, created_at, deleted_at) VALUES (?, ?, ?, ?, ?, ?, NULL)",
		tx.ID, tx.ChatID, tx.CreatorID, tx.Amount, nullable(tx.Title), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func scanTransaction(scan func(dest ...interface{}) error) (*models.Transaction, error) {
	tx := &models.Transaction{}
	var title sql.NullString
	var deletedAt sql.NullInt64

	err := scan(&tx.ID, &tx.ChatID, &tx.CreatorID, &tx.Amount, &title, &tx.CreatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	tx.Title = title.String
	tx.DeletedAt = deletedAt.Int64
	return tx, nil
}

// GetTransaction retrieves a transaction by id, whether deleted or not.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, chat_id, creator_id, amount, title, created_at, deleted_at FROM transactions WHERE id = ?", id)

	tx, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// ListActiveTransactions returns the chat's non-deleted transactions in
// creation order.
func (s *SQLiteStore) ListActiveTransactions(ctx context.Context, chatID int64) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, creator_id, amount, title, created_at, deleted_at
		 FROM transactions WHERE chat_id = ? AND deleted_at IS NULL
		 ORDER BY created_at, id`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

// SoftDeleteTransaction marks a transaction deleted so it disappears from
// aggregation while staying on record. Already-deleted transactions are not
// touched again.
func (s *SQLiteStore) SoftDeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check transaction delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateShare persists a participant share, assigning the ID when unset.
func (s *SQLiteStore) CreateShare(ctx context.Context, share *models.ParticipantShare) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participant_shares (id, transaction_id, user_id, share_amount, tag) VALUES (?, ?, ?, ?, ?)",
		share.ID, share.TransactionID, share.UserID, share.ShareAmount, share.Tag,
	)
	if err != nil {
		return fmt.Errorf("failed to insert share: %w", err)
	}
	return nil
}

// GetShare retrieves a share by id.
func (s *SQLiteStore) GetShare(ctx context.Context, id string) (*models.ParticipantShare, error) {
	share := &models.ParticipantShare{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, transaction_id, user_id, share_amount, tag FROM participant_shares WHERE id = ?", id,
	).Scan(&share.ID, &share.TransactionID, &share.UserID, &share.ShareAmount, &share.Tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return share, nil
}

// ListShares returns all shares of a transaction in creation order.
func (s *SQLiteStore) ListShares(ctx context.Context, transactionID string) ([]*models.ParticipantShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, transaction_id, user_id, share_amount, tag FROM participant_shares WHERE transaction_id = ? ORDER BY rowid",
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.ParticipantShare
	for rows.Next() {
		share := &models.ParticipantShare{}
		if err := rows.Scan(&share.ID, &share.TransactionID, &share.UserID, &share.ShareAmount, &share.Tag); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}

// DeleteShare removes a single share.
func (s *SQLiteStore) DeleteShare(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participant_shares WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check share delete: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteSharesByTransaction removes every share of a transaction. Deleting
// zero shares is not an error: a transaction may legitimately have none.
func (s *SQLiteStore) DeleteSharesByTransaction(ctx context.Context, transactionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM participant_shares WHERE transaction_id = ?", transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shares: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted shares: %w", err)
	}
	return affected, nil
}
