package domain

// Role represents user role in the system
type Role string

const (
	RoleUser    Role = "USER"
	RoleAgent   Role = "AGENT"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAgent, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Common agreement workflow labels. Status is free-form; these are
// only the values the seeded client offers.
const (
	StatusDrafted = "Drafted"
	StatusSigned  = "Signed"
	StatusExpired = "Expired"
)
