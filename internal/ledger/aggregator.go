package ledger

import "github.com/AlexaLeb/MoneyShare/internal/models"

// TransactionShares pairs one transaction with its participant shares, the
// unit the aggregator consumes.
type TransactionShares struct {
	Transaction *models.Transaction
	Shares      []*models.ParticipantShare
}

// Aggregate replays a chat's live transaction log into a complete map of
// member id to net balance.
//
// For every transaction the creator gets an accumulator entry (0.0) even if
// the transaction has no shares yet. Every share then debits the participant
// and credits the creator by the same amount, so the sum of all output values
// stays within Epsilon of zero. The transaction's own Amount field is never
// consulted: the shares are the authoritative record of who owes what.
//
// The accumulation is commutative, so the result does not depend on the
// iteration order of transactions or shares, and replaying the same log twice
// yields an identical map.
func Aggregate(txs []TransactionShares) map[int64]float64 {
	balances := make(map[int64]float64)

	for _, tx := range txs {
		creator := tx.Transaction.CreatorID
		if _, ok := balances[creator]; !ok {
			balances[creator] = 0.0
		}

		for _, p := range tx.Shares {
			balances[p.UserID] -= p.ShareAmount
			balances[creator] += p.ShareAmount
		}
	}

	return balances
}
