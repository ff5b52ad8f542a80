package models

// Balance is a member's net position in a chat: negative means the member
// owes money, positive means the member is owed. It is a derived cache
// overwritten by the rebuild pass, never mutated directly.
type Balance struct {
	// ChatID and UserID form the unique composite key.
	ChatID int64
	UserID int64

	// Amount is the signed net position.
	Amount float64

	// UpdatedAt is the Unix timestamp of the last rebuild that wrote this row.
	UpdatedAt int64
}
