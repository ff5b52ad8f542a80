package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/AlexaLeb/MoneyShare/internal/models"
)

// ErrNotFinite is returned when a balance map contains NaN or infinite
// amounts. The planner rejects such input before partitioning.
var ErrNotFinite = errors.New("balance amount is not finite")

// side is one queue entry: a member and the positive magnitude still owed
// (debtors) or still expected (creditors).
type side struct {
	user   int64
	amount float64
}

// Plan turns a snapshot of net balances into an ordered list of transfers
// that drives every balance to zero within Epsilon.
//
// Members are partitioned, preserving the input order, into a debtor queue
// (amount < -Epsilon) and a creditor queue (amount > Epsilon); anyone within
// Epsilon of zero is already settled and excluded. The front debtor is then
// matched against the front creditor: the pair settles min(need, have)
// rounded to cents, and whichever side keeps a residual above Epsilon stays
// at the front of its queue for the next round.
//
// Guarantees: every emitted transfer is strictly positive, the plan never
// exceeds len(debtors)+len(creditors)-1 transfers, and applying the plan
// (debit from, credit to) leaves all balances within rounding tolerance of
// zero. The plan is a valid zeroing sequence, not the combinatorially minimal
// one.
func Plan(balances []*models.Balance) ([]models.Transfer, error) {
	for _, b := range balances {
		if !finite(b.Amount) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFinite, b.UserID)
		}
	}

	var debtors, creditors []side
	for _, b := range balances {
		switch {
		case b.Amount < -Epsilon:
			debtors = append(debtors, side{user: b.UserID, amount: -b.Amount})
		case b.Amount > Epsilon:
			creditors = append(creditors, side{user: b.UserID, amount: b.Amount})
		}
	}

	var transfers []models.Transfer
	for len(debtors) > 0 && len(creditors) > 0 {
		d := &debtors[0]
		c := &creditors[0]

		pay := Round2(math.Min(d.amount, c.amount))
		if pay <= 0 {
			// The smaller residual is below the cent grain: nothing left to
			// move between this pair, so that side counts as settled.
			if d.amount <= c.amount {
				debtors = debtors[1:]
			} else {
				creditors = creditors[1:]
			}
			continue
		}

		transfers = append(transfers, models.Transfer{
			FromUserID: d.user,
			ToUserID:   c.user,
			Amount:     pay,
		})

		d.amount -= pay
		c.amount -= pay

		if d.amount <= Epsilon {
			debtors = debtors[1:]
		}
		if c.amount <= Epsilon {
			creditors = creditors[1:]
		}
	}

	return transfers, nil
}
