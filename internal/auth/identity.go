package auth

import "github.com/horseradish/horseradish-server/internal/model"

// ResolveIdentity expands user into its capability set from its current roles.
func ResolveIdentity(user model.User) model.Identity {
	identity := model.NewIdentity(model.UserNeed(user.ID))
	for _, role := range user.Roles {
		identity.Add(model.RoleNeed(role.Name))
		identity.Add(model.RoleMemberNeed(role.ID))
	}
	return identity
}
