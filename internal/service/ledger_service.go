// Package service orchestrates the ledger engine against the store:
// transaction lifecycle, balance rebuilds, settlement planning and member
// provisioning.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/AlexaLeb/MoneyShare/internal/ledger"
	"github.com/AlexaLeb/MoneyShare/internal/metrics"
	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// defaultShareTag is used when a share is created without a category.
const defaultShareTag = "uncategorized"

var (
	// ErrNoParticipants is returned when an equal split has nobody to split
	// across.
	ErrNoParticipants = errors.New("transaction needs at least one participant")

	// ErrInvalidAmount is returned for non-finite or non-positive amounts on
	// write operations.
	ErrInvalidAmount = errors.New("amount must be a positive finite number")
)

// LedgerService owns the transaction lifecycle and keeps the balance
// snapshot in sync: every mutation triggers a full rebuild of the chat's
// balances from the live transaction log.
//
// Rebuilds and mutations for one chat serialize on a per-chat mutex, so two
// rebuilds of the same chat never interleave their writes; different chats
// proceed independently.
type LedgerService struct {
	store storage.Store
	locks sync.Map // chat id -> *sync.Mutex
}

// NewLedgerService creates a LedgerService on top of the given store.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

func (s *LedgerService) chatLock(chatID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(chatID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// CreateTransaction records an expense without any shares yet. Participants
// can be attached afterwards; until they are, the transaction contributes
// nothing to anyone's balance (the creator still gets a zero balance row).
func (s *LedgerService) CreateTransaction(ctx context.Context, chatID, creatorID int64, amount float64, title string) (*models.Transaction, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	mu := s.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()

	tx := &models.Transaction{ChatID: chatID, CreatorID: creatorID, Amount: amount, Title: title}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.rebuildLocked(ctx, chatID); err != nil {
		return nil, err
	}
	slog.Info("Transaction created", "chat_id", chatID, "transaction_id", tx.ID, "amount", amount)
	return tx, nil
}

// CreateTransactionSplit records an expense split equally across the given
// participants: each share is amount/len(participants), tagged with the title
// or the default tag.
func (s *LedgerService) CreateTransactionSplit(ctx context.Context, chatID, creatorID int64, amount float64, title string, participants []int64) (*models.Transaction, []*models.ParticipantShare, error) {
	if !validAmount(amount) {
		return nil, nil, ErrInvalidAmount
	}
	if len(participants) == 0 {
		return nil, nil, ErrNoParticipants
	}

	mu := s.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()

	tx := &models.Transaction{ChatID: chatID, CreatorID: creatorID, Amount: amount, Title: title}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, nil, err
	}

	tag := title
	if tag == "" {
		tag = defaultShareTag
	}

	perHead := amount / float64(len(participants))
	shares := make([]*models.ParticipantShare, 0, len(participants))
	for _, userID := range participants {
		share := &models.ParticipantShare{
			TransactionID: tx.ID,
			UserID:        userID,
			ShareAmount:   perHead,
			Tag:           tag,
		}
		if err := s.store.CreateShare(ctx, share); err != nil {
			return nil, nil, err
		}
		shares = append(shares, share)
	}

	if _, err := s.rebuildLocked(ctx, chatID); err != nil {
		return nil, nil, err
	}
	slog.Info("Transaction split created",
		"chat_id", chatID,
		"transaction_id", tx.ID,
		"amount", amount,
		"participants", len(participants),
	)
	return tx, shares, nil
}

// AddParticipant attaches a share to an existing live transaction.
func (s *LedgerService) AddParticipant(ctx context.Context, transactionID string, userID int64, shareAmount float64, tag string) (*models.ParticipantShare, error) {
	if !validAmount(shareAmount) {
		return nil, ErrInvalidAmount
	}

	tx, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	mu := s.chatLock(tx.ChatID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock: a concurrent delete may have retired the
	// transaction between the lookup and the lock, and a share written now
	// would orphan silently.
	tx, err = s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Deleted() {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}

	if tag == "" {
		tag = defaultShareTag
	}
	share := &models.ParticipantShare{
		TransactionID: transactionID,
		UserID:        userID,
		ShareAmount:   shareAmount,
		Tag:           tag,
	}
	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, err
	}

	if _, err := s.rebuildLocked(ctx, tx.ChatID); err != nil {
		return nil, err
	}
	return share, nil
}

// RemoveParticipant deletes a single share and recomputes the chat's
// balances.
func (s *LedgerService) RemoveParticipant(ctx context.Context, shareID string) error {
	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		return err
	}
	tx, err := s.store.GetTransaction(ctx, share.TransactionID)
	if err != nil {
		return err
	}

	mu := s.chatLock(tx.ChatID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.store.DeleteShare(ctx, shareID); err != nil {
		return err
	}

	_, err = s.rebuildLocked(ctx, tx.ChatID)
	return err
}

// DeleteTransaction removes a transaction as an ordered two-step operation:
// the shares are hard-deleted first, then the transaction is soft-deleted.
// The order guarantees no share is ever left referencing a missing
// transaction, which would silently corrupt later rebuilds.
func (s *LedgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx.Deleted() {
		return fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}

	mu := s.chatLock(tx.ChatID)
	mu.Lock()
	defer mu.Unlock()

	deleted, err := s.store.DeleteSharesByTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.store.SoftDeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	if _, err := s.rebuildLocked(ctx, tx.ChatID); err != nil {
		return err
	}
	slog.Info("Transaction deleted",
		"chat_id", tx.ChatID,
		"transaction_id", transactionID,
		"shares_removed", deleted,
	)
	return nil
}

// History returns the chat's most recent live transactions with their
// shares, newest last, capped at limit.
func (s *LedgerService) History(ctx context.Context, chatID int64, limit int) ([]ledger.TransactionShares, error) {
	txs, err := s.store.ListActiveTransactions(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}

	log := make([]ledger.TransactionShares, 0, len(txs))
	for _, tx := range txs {
		shares, err := s.store.ListShares(ctx, tx.ID)
		if err != nil {
			return nil, err
		}
		log = append(log, ledger.TransactionShares{Transaction: tx, Shares: shares})
	}
	return log, nil
}

// Rebuild recomputes every member's net balance for the chat from the raw
// transaction log and overwrites the balance snapshot. It returns the
// aggregated map. Members who no longer appear in any live transaction keep
// their previous balance row untouched.
func (s *LedgerService) Rebuild(ctx context.Context, chatID int64) (map[int64]float64, error) {
	mu := s.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()
	return s.rebuildLocked(ctx, chatID)
}

// rebuildLocked is the rebuild body; the caller must hold the chat lock so
// reads and the snapshot write cannot interleave with another mutation of
// the same chat.
func (s *LedgerService) rebuildLocked(ctx context.Context, chatID int64) (map[int64]float64, error) {
	start := time.Now()

	txs, err := s.store.ListActiveTransactions(ctx, chatID)
	if err != nil {
		metrics.RebuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	log := make([]ledger.TransactionShares, 0, len(txs))
	for _, tx := range txs {
		shares, err := s.store.ListShares(ctx, tx.ID)
		if err != nil {
			metrics.RebuildsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		log = append(log, ledger.TransactionShares{Transaction: tx, Shares: shares})
	}

	balances := ledger.Aggregate(log)

	if err := s.store.UpsertBalances(ctx, chatID, balances); err != nil {
		metrics.RebuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RebuildsTotal.WithLabelValues("ok").Inc()
	metrics.RebuildDuration.Observe(time.Since(start).Seconds())
	slog.Debug("Balances rebuilt",
		"chat_id", chatID,
		"transactions", len(log),
		"members", len(balances),
	)
	return balances, nil
}
