package auth

import "go-community-forum/internal/domain"

// Resolver derives the effective role from the configured privileged
// address. Evaluated once at login; the result is baked into the token.
type Resolver struct {
	AdminEmail string
}

func (r *Resolver) Resolve(email string) string {
	if r.AdminEmail != "" && email == r.AdminEmail {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}
