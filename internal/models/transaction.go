package models

// Transaction is a recorded expense event: one member paid, and zero or more
// participant shares say who owes what portion of it.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// ChatID is the chat this transaction belongs to.
	ChatID int64

	// CreatorID is the member who paid.
	CreatorID int64

	// Amount is the nominal total of the expense. It is informational only:
	// balance aggregation is driven by the participant shares, never by this
	// field, and the two are not cross-checked.
	Amount float64

	// Title is an optional human-readable description.
	Title string

	// CreatedAt is the Unix timestamp when the transaction was created.
	CreatedAt int64

	// DeletedAt is the Unix timestamp of the soft delete, or zero while the
	// transaction is live. A deleted transaction is excluded from aggregation.
	DeletedAt int64
}

// Deleted reports whether the transaction has been soft-deleted.
func (t *Transaction) Deleted() bool {
	return t.DeletedAt != 0
}

// ParticipantShare is the portion of a Transaction attributed to one member.
// Its lifecycle is bound to the owning transaction: shares are deleted before
// the transaction itself so no share ever references a missing transaction.
type ParticipantShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// TransactionID is the owning transaction.
	TransactionID string

	// UserID is the member who owes this portion.
	UserID int64

	// ShareAmount is the portion this member owes to the creator.
	ShareAmount float64

	// Tag is a free-text category, defaulted when blank.
	Tag string
}
