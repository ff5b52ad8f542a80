package models

// Transfer is one point-to-point payment in a settlement plan. Transfers are
// ephemeral: the planner emits them for display and they are never persisted.
type Transfer struct {
	// FromUserID is the debtor making the payment.
	FromUserID int64 `json:"from_user_id"`

	// ToUserID is the creditor receiving it.
	ToUserID int64 `json:"to_user_id"`

	// Amount is the payment amount, always strictly positive.
	Amount float64 `json:"amount"`
}
