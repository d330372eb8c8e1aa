package identity_test

import (
	"testing"

	"github.com/mdouchement/anylist/internal/alerror"
	"github.com/mdouchement/anylist/internal/identity"
	"github.com/mdouchement/anylist/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	member := model.NewUser()
	admin := model.NewUser()
	admin.Roles = []string{model.RoleMember, model.RoleAdmin}

	// No required roles only means authenticated.
	u, err := identity.Require(member)
	assert.NoError(t, err)
	assert.Equal(t, member, u)

	_, err = identity.Require(nil)
	assert.True(t, alerror.IsUnauthorized(err))

	_, err = identity.Require(member, model.RoleAdmin)
	assert.True(t, alerror.IsUnauthorized(err))

	u, err = identity.Require(admin, model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, admin, u)

	// One matching role out of the required set is enough.
	u, err = identity.Require(admin, model.RoleSuperAdmin, model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, admin, u)
}

func TestRequireAdmin(t *testing.T) {
	member := model.NewUser()
	super := model.NewUser()
	super.Roles = []string{model.RoleSuperAdmin}

	_, err := identity.RequireAdmin(member)
	assert.True(t, alerror.IsUnauthorized(err))

	_, err = identity.RequireAdmin(super)
	assert.NoError(t, err)

	assert.False(t, identity.IsAdmin(member))
	assert.False(t, identity.IsAdmin(nil))
	assert.True(t, identity.IsAdmin(super))
}
