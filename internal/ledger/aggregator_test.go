package ledger

import (
	"math"
	"math/rand"
	"testing"

	"github.com/AlexaLeb/MoneyShare/internal/models"
)

func tx(id string, creator int64, shares ...*models.ParticipantShare) TransactionShares {
	for _, s := range shares {
		s.TransactionID = id
	}
	return TransactionShares{
		Transaction: &models.Transaction{ID: id, ChatID: 1, CreatorID: creator, Amount: 0},
		Shares:      shares,
	}
}

func share(user int64, amount float64) *models.ParticipantShare {
	return &models.ParticipantShare{UserID: user, ShareAmount: amount}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name string
		txs  []TransactionShares
		want map[int64]float64
	}{
		{
			name: "empty log yields empty map",
			txs:  nil,
			want: map[int64]float64{},
		},
		{
			name: "one payer two participants",
			txs: []TransactionShares{
				tx("t1", 1, share(2, 500), share(3, 500)),
			},
			want: map[int64]float64{1: 1000, 2: -500, 3: -500},
		},
		{
			name: "transaction without shares seeds creator at zero",
			txs: []TransactionShares{
				tx("t1", 7),
			},
			want: map[int64]float64{7: 0},
		},
		{
			name: "creator participating in own transaction nets out",
			txs: []TransactionShares{
				tx("t1", 1, share(1, 100), share(2, 100)),
			},
			want: map[int64]float64{1: 100, 2: -100},
		},
		{
			name: "nominal amount is ignored, shares are authoritative",
			txs: []TransactionShares{
				{
					// Amount deliberately disagrees with the sum of shares.
					Transaction: &models.Transaction{ID: "t1", ChatID: 1, CreatorID: 1, Amount: 9999},
					Shares:      []*models.ParticipantShare{share(2, 50)},
				},
			},
			want: map[int64]float64{1: 50, 2: -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.txs)
			if len(got) != len(tt.want) {
				t.Fatalf("Aggregate() has %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for user, want := range tt.want {
				if math.Abs(got[user]-want) > Epsilon {
					t.Errorf("balance[%d] = %v, want %v", user, got[user], want)
				}
			}
		})
	}
}

// buildFixture creates a multi-transaction log programmatically so the
// conservation assertion does not rely on hand arithmetic.
func buildFixture(seed int64, users, txCount int) []TransactionShares {
	rng := rand.New(rand.NewSource(seed))
	var txs []TransactionShares
	for i := 0; i < txCount; i++ {
		creator := int64(rng.Intn(users) + 1)
		var shares []*models.ParticipantShare
		for u := 1; u <= users; u++ {
			if int64(u) == creator || rng.Intn(2) == 0 {
				continue
			}
			shares = append(shares, share(int64(u), Round2(rng.Float64()*200)))
		}
		txs = append(txs, tx("", creator, shares...))
	}
	return txs
}

func TestAggregateConservation(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		txs := buildFixture(seed, 5, 20)
		balances := Aggregate(txs)

		var sum float64
		for _, v := range balances {
			sum += v
		}
		// Tolerance scales with the number of float additions.
		if math.Abs(sum) > 1e-9*float64(len(txs)) {
			t.Errorf("seed %d: balances sum to %v, want 0", seed, sum)
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	txs := buildFixture(3, 4, 15)

	first := Aggregate(txs)
	second := Aggregate(txs)

	if len(first) != len(second) {
		t.Fatalf("repeated aggregation changed entry count: %d vs %d", len(first), len(second))
	}
	for user, v := range first {
		// Bit-identical, not merely within tolerance.
		if second[user] != v {
			t.Errorf("balance[%d] changed across runs: %v vs %v", user, v, second[user])
		}
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	txs := buildFixture(9, 5, 12)
	want := Aggregate(txs)

	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]TransactionShares, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for i := range shuffled {
			perm := make([]*models.ParticipantShare, len(shuffled[i].Shares))
			copy(perm, shuffled[i].Shares)
			rng.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })
			shuffled[i].Shares = perm
		}

		got := Aggregate(shuffled)
		if len(got) != len(want) {
			t.Fatalf("trial %d: entry count %d, want %d", trial, len(got), len(want))
		}
		for user, v := range want {
			if math.Abs(got[user]-v) > Epsilon {
				t.Errorf("trial %d: balance[%d] = %v, want %v", trial, user, got[user], v)
			}
		}
	}
}
