package service

import (
	"context"
	"log/slog"

	"github.com/AlexaLeb/MoneyShare/internal/ledger"
	"github.com/AlexaLeb/MoneyShare/internal/metrics"
	"github.com/AlexaLeb/MoneyShare/internal/models"
	"github.com/AlexaLeb/MoneyShare/internal/storage"
)

// SettlementService computes settlement plans from the current balance
// snapshot. It is read-only: a plan is display material until someone
// actually pays, it never mutates the ledger.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService on top of the given store.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Balances returns the chat's current balance snapshot in stable member
// order.
func (s *SettlementService) Balances(ctx context.Context, chatID int64) ([]*models.Balance, error) {
	return s.store.ListBalances(ctx, chatID)
}

// Plan turns the chat's balance snapshot into a sequence of transfers that
// settles everyone. The plan is bounded in size, not guaranteed minimal.
func (s *SettlementService) Plan(ctx context.Context, chatID int64) ([]models.Transfer, error) {
	balances, err := s.store.ListBalances(ctx, chatID)
	if err != nil {
		return nil, err
	}

	transfers, err := ledger.Plan(balances)
	if err != nil {
		return nil, err
	}

	metrics.PlansTotal.Inc()
	metrics.TransfersPerPlan.Observe(float64(len(transfers)))
	slog.Debug("Settlement plan computed", "chat_id", chatID, "transfers", len(transfers))
	return transfers, nil
}
