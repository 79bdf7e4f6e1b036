package model

import "time"

// Client represents a professional client of the studio — the tenant that
// owns a gated user account and a set of documents.
type Client struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	VATNumber   string    `json:"vat_number"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// Username is the login name of the client's account, populated by
	// listings that join the account table. Empty outside those reads.
	Username string `json:"username,omitempty"`
}

// User is an account that can log into the portal. A client-role user always
// references exactly one Client; the reference is set at creation and never
// reassigned. Admin users carry no client reference.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ClientID     *string   `json:"client_id"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity returns the authenticated descriptor for the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		ClientID: u.ClientID,
		Active:   u.Active,
	}
}
