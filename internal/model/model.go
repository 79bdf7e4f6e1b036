package model

// Package model contains domain models/data structures.
// These are pure domain types with no database-specific dependencies or tags.
// They can be used across layers (HTTP, service, repository, storage) without
// coupling to persistence.

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Identity is the descriptor returned by a successful login. It is passed to
// operations that need to make authorization decisions. Active signals whether
// the account has completed password setup; the UI gates on it, this core
// does not re-check it.
type Identity struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     Role    `json:"role"`
	ClientID *string `json:"client_id"`
	Active   bool    `json:"active"`
}
