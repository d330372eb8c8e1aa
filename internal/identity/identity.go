// Package identity gates every operation of the API.
//
// The check is a plain function composed at the entry path of each operation,
// before any repository access. Handlers and services call Require with the
// role set the operation demands and abort on error.
package identity

import (
	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/model"
)

// Require returns the given user if it holds at least one of the required
// roles. An empty role set only requires the caller to be authenticated.
func Require(u *model.User, roles ...string) (*model.User, error) {
	if u == nil {
		return nil, alerror.Unauthorized("Authentication required.")
	}

	if !u.HasAnyRole(roles...) {
		return nil, alerror.Unauthorized("Insufficient roles for this operation.")
	}
	return u, nil
}

// RequireAdmin is a shorthand for Require with the administrative roles.
func RequireAdmin(u *model.User) (*model.User, error) {
	return Require(u, model.RoleAdmin, model.RoleSuperAdmin)
}

// IsAdmin returns true if the user holds an administrative role.
func IsAdmin(u *model.User) bool {
	return u != nil && u.HasAnyRole(model.RoleAdmin, model.RoleSuperAdmin)
}
