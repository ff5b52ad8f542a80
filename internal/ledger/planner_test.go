package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/AlexaLeb/MoneyShare/internal/models"
)

func bal(user int64, amount float64) *models.Balance {
	return &models.Balance{ChatID: 1, UserID: user, Amount: amount}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		balances []*models.Balance
		want     []models.Transfer
	}{
		{
			name:     "no balances",
			balances: nil,
			want:     nil,
		},
		{
			name: "all settled within epsilon",
			balances: []*models.Balance{
				bal(1, 0), bal(2, 5e-7), bal(3, -5e-7),
			},
			want: nil,
		},
		{
			name:     "single debtor single creditor",
			balances: []*models.Balance{bal(1, -300), bal(2, 300)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 2, Amount: 300},
			},
		},
		{
			name:     "two debtors one creditor",
			balances: []*models.Balance{bal(1, -100), bal(2, -200), bal(3, 300)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 3, Amount: 100},
				{FromUserID: 2, ToUserID: 3, Amount: 200},
			},
		},
		{
			name:     "one debtor two creditors keeps debtor at front",
			balances: []*models.Balance{bal(1, -300), bal(2, 100), bal(3, 200)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 2, Amount: 100},
				{FromUserID: 1, ToUserID: 3, Amount: 200},
			},
		},
		{
			name:     "queues follow input order, not magnitude",
			balances: []*models.Balance{bal(1, -10), bal(2, 40), bal(3, -30), bal(4, 0)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 2, Amount: 10},
				{FromUserID: 3, ToUserID: 2, Amount: 30},
			},
		},
		{
			name:     "fractional amounts round to cents",
			balances: []*models.Balance{bal(1, -33.336), bal(2, 33.336)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 2, Amount: 33.34},
			},
		},
		{
			// Above Epsilon but below the cent grain: the pair cannot move
			// money, the debtor side is dropped and no transfer is emitted.
			name:     "sub-cent residual yields no transfer",
			balances: []*models.Balance{bal(1, -0.004), bal(2, 0.004)},
			want:     nil,
		},
		{
			// The debtor's residual after the rounded transfer is below the
			// cent grain; it is dropped instead of looping against the next
			// creditor forever.
			name:     "sub-cent residual after a transfer terminates",
			balances: []*models.Balance{bal(1, -100.004), bal(2, 100), bal(3, 0.004)},
			want: []models.Transfer{
				{FromUserID: 1, ToUserID: 2, Amount: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.balances)
			if err != nil {
				t.Fatalf("Plan() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Plan() = %v, want %v", got, tt.want)
			}
			for i, w := range tt.want {
				if got[i].FromUserID != w.FromUserID || got[i].ToUserID != w.ToUserID {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], w)
				}
				if math.Abs(got[i].Amount-w.Amount) > 0.005 {
					t.Errorf("transfer %d amount = %v, want %v", i, got[i].Amount, w.Amount)
				}
			}
		})
	}
}

func TestPlanRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Plan([]*models.Balance{bal(1, v), bal(2, -v)})
		if !errors.Is(err, ErrNotFinite) {
			t.Errorf("Plan with amount %v: error = %v, want ErrNotFinite", v, err)
		}
	}
}

// TestPlanProperties checks the planner guarantees on generated balance maps:
// strictly positive transfers, the n-1 transfer bound, and that applying the
// plan settles every balance.
func TestPlanProperties(t *testing.T) {
	fixtures := [][]*models.Balance{
		{bal(1, -500), bal(2, -500), bal(3, 1000)},
		{bal(1, 250.50), bal(2, -100.25), bal(3, -150.25)},
		{bal(1, -0.01), bal(2, 0.01)},
		{bal(1, -75.33), bal(2, -24.67), bal(3, 50), bal(4, 50)},
		{bal(1, 10), bal(2, -10), bal(3, 20), bal(4, -20), bal(5, 30), bal(6, -30)},
	}

	for i, balances := range fixtures {
		transfers, err := Plan(balances)
		if err != nil {
			t.Fatalf("fixture %d: Plan() error: %v", i, err)
		}

		debtors, creditors := 0, 0
		residual := make(map[int64]float64)
		for _, b := range balances {
			residual[b.UserID] = b.Amount
			switch {
			case b.Amount < -Epsilon:
				debtors++
			case b.Amount > Epsilon:
				creditors++
			}
		}

		if max := debtors + creditors - 1; len(transfers) > max {
			t.Errorf("fixture %d: %d transfers, bound is %d", i, len(transfers), max)
		}

		for _, tr := range transfers {
			if tr.Amount <= 0 {
				t.Errorf("fixture %d: non-positive transfer %+v", i, tr)
			}
			residual[tr.FromUserID] += tr.Amount
			residual[tr.ToUserID] -= tr.Amount
		}

		for user, v := range residual {
			if math.Abs(v) > 0.005 {
				t.Errorf("fixture %d: user %d left with residual %v after applying plan", i, user, v)
			}
		}
	}
}
