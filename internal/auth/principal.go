package auth

import "inkwell/internal/models"

// Role classifies what a principal may do. There is a single distinguished
// administrator; everyone else is a reader.
type Role string

const (
	RoleReader        Role = "reader"
	RoleAdministrator Role = "administrator"
)

// Principal is the resolved identity of the requester for the current
// session: either Anonymous (zero value) or Identified with a user and role.
type Principal struct {
	User *models.User
	Role Role
}

// Anonymous is the principal of an unauthenticated session.
var Anonymous = Principal{}

// Identified reports whether the principal is bound to a user.
func (p Principal) Identified() bool {
	return p.User != nil
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Identified() && p.Role == RoleAdministrator
}

// UserID returns the bound user's id, or 0 for Anonymous.
func (p Principal) UserID() uint {
	if p.User == nil {
		return 0
	}
	return p.User.ID
}

// Identify builds an Identified principal. The role is computed here, once,
// from the configured administrator rule so the distinguished id is not
// compared all over the codebase.
func Identify(user *models.User, adminUserID uint) Principal {
	role := RoleReader
	if user.ID == adminUserID {
		role = RoleAdministrator
	}
	return Principal{User: user, Role: role}
}
