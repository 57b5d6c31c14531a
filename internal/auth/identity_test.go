package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horseradish/horseradish-server/internal/model"
)

func TestResolveIdentity(t *testing.T) {
	user := model.User{ID: 7, Roles: []model.Role{{ID: 1, Name: "admin"}, {ID: 5, Name: "db"}}}

	identity := ResolveIdentity(user)

	assert.Equal(t, 5, identity.Len())
	for _, need := range []model.Need{
		model.UserNeed(7),
		model.RoleNeed("admin"),
		model.RoleNeed("db"),
		model.RoleMemberNeed(1),
		model.RoleMemberNeed(5),
	} {
		assert.True(t, identity.Provides(need), need)
	}
	assert.False(t, identity.Provides(model.UserNeed(1)))
}

func TestResolveIdentity_NoRoles(t *testing.T) {
	identity := ResolveIdentity(model.User{ID: 2})

	assert.Equal(t, []model.Need{model.UserNeed(2)}, identity.Needs())
}

func TestResolveIdentity_FollowsCurrentRoles(t *testing.T) {
	user := model.User{ID: 2, Roles: []model.Role{{ID: 3, Name: "ops"}}}
	before := ResolveIdentity(user)

	user.Roles = nil
	after := ResolveIdentity(user)

	assert.True(t, before.Provides(model.RoleNeed("ops")))
	assert.False(t, after.Provides(model.RoleNeed("ops")))
}

func TestIdentity_JSON(t *testing.T) {
	identity := ResolveIdentity(model.User{ID: 7, Roles: []model.Role{{ID: 1, Name: "admin"}}})

	data, err := json.Marshal(identity)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"method":"id","value":"7"},
		{"method":"member","value":"1"},
		{"method":"role","value":"admin"}
	]`, string(data))

	var decoded model.Identity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, identity.Needs(), decoded.Needs())
}
