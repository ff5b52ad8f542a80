package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

const upsertBalanceSQL = `
INSERT INTO balances (chat_id, user_id, amount, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (chat_id, user_id) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`

// GetBalance retrieves one member's balance row.
func (s *SQLiteStore) GetBalance(ctx context.Context, chatID, userID int64) (*models.Balance, error) {
	b := &models.Balance{}
	err := s.db.QueryRowContext(ctx,
		"SELECT chat_id, user_id, amount, updated_at FROM balances WHERE chat_id = ? AND user_id = ?",
		chatID, userID,
	).Scan(&b.ChatID, &b.UserID, &b.Amount, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}

// UpsertBalance creates or overwrites one member's balance row.
func (s *SQLiteStore) UpsertBalance(ctx context.Context, chatID, userID int64, amount float64) (*models.Balance, error) {
	now := time.Now().Unix()
	if _, err := s.db.ExecContext(ctx, upsertBalanceSQL, chatID, userID, amount, now); err != nil {
		return nil, fmt.Errorf("failed to upsert balance: %w", err)
	}
	return &models.Balance{ChatID: chatID, UserID: userID, Amount: amount, UpdatedAt: now}, nil
}

// UpsertBalances writes a rebuilt snapshot atomically: all rows or none.
// Members absent from amounts keep whatever row they had before. Rows are
// written in ascending user id order so members new to the snapshot get
// deterministic positions in the ListBalances order.
func (s *SQLiteStore) UpsertBalances(ctx context.Context, chatID int64, amounts map[int64]float64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	userIDs := make([]int64, 0, len(amounts))
	for userID := range amounts {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	now := time.Now().Unix()
	for _, userID := range userIDs {
		if _, err := dbTx.ExecContext(ctx, upsertBalanceSQL, chatID, userID, amounts[userID], now); err != nil {
			return fmt.Errorf("failed to upsert balance for user %d: %w", userID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit balances: %w", err)
	}
	return nil
}

// ListBalances returns the chat's balance rows ordered by when each member
// first got a row. Upserts keep the original rowid, so this order is stable
// across rebuilds; the settlement planner depends on that.
func (s *SQLiteStore) ListBalances(ctx context.Context, chatID int64) ([]*models.Balance, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT chat_id, user_id, amount, updated_at FROM balances WHERE chat_id = ? ORDER BY rowid",
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []*models.Balance
	for rows.Next() {
		b := &models.Balance{}
		if err := rows.Scan(&b.ChatID, &b.UserID, &b.Amount, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}
	return balances, nil
}
