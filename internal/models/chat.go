package models

// Chat is the scoping unit within which balances are tracked independently.
type Chat struct {
	// ID is the stable external identifier of the conversation.
	ID int64

	// Title is the chat's display name. Optional.
	Title string

	// CreatedAt is the Unix timestamp when the chat was first seen.
	CreatedAt int64
}
