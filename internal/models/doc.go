// Package models defines the core domain models for MoneyShare.
//
// The ledger is scoped by chat: every Transaction belongs to one Chat, every
// ParticipantShare belongs to one Transaction, and Balance rows are a derived
// cache keyed by (chat, user). Members are identified by stable numeric IDs
// (for example a messenger user id), so User and Chat carry int64 primary
// keys, while Transactions and ParticipantShares get UUID identifiers
// assigned by the store.
//
// Balance is never authoritative data: it must always be reproducible by
// replaying the live Transactions and their ParticipantShares. Only the
// rebuild pass writes it.
package models
