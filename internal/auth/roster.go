package auth

import "github.com/ldurand/paydash/backend/internal/domain"

// DefaultRoster returns the fixed demo identities. A real deployment would
// swap this for a user directory behind the same Session construction.
func DefaultRoster() []domain.User {
	return []domain.User{
		{
			ID:    "1",
			Email: "admin@dashboard.com",
			Name:  "Administrateur",
			Role:  domain.RoleAdmin,
		},
		{
			ID:    "2",
			Email: "user@dashboard.com",
			Name:  "Utilisateur Simple",
			Role:  domain.RoleUser,
		},
	}
}
