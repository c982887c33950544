package entity

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleDealer    = "dealer"
	RoleAssociate = "associate"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleDealer || s == RoleAssociate
}

// User is an account in the network. Dealers are bound to a branch; associates form
// the referral hierarchy through ReferrerID.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Phone        string
	Role         string // admin, dealer, associate
	BranchCode   string // set for dealers; empty otherwise
	ReferrerID   string // user ID of the sponsor; empty for roots
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
