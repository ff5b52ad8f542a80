package models

// User represents a member of one or more chats.
//
// The ID is a stable external identifier (e.g. a messenger user id) for
// members provisioned through the ensure flow, or a store-assigned id for
// users registered through the API.
type User struct {
	// ID is the unique numeric identifier for the user.
	ID int64

	// Username is the user's handle. Optional for provisioned members,
	// required (and unique) for users who register with a password.
	Username string

	// FirstName is the display name. Optional.
	FirstName string

	// PasswordHash is the bcrypt hash used for API login.
	// Empty for members who were only ever provisioned from chat activity.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user was first seen.
	CreatedAt int64
}
