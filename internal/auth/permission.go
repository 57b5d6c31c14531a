package auth

import "github.com/horseradish/horseradish-server/internal/model"

// Permission is satisfied when the identity provides any one of its needs.
type Permission struct {
	needs []model.Need
}

// AnyOf builds a permission satisfied by any of needs.
func AnyOf(needs ...model.Need) Permission {
	return Permission{needs: append([]model.Need(nil), needs...)}
}

// Union returns a permission satisfied when any of perms is.
func Union(perms ...Permission) Permission {
	var needs []model.Need
	for _, p := range perms {
		needs = append(needs, p.needs...)
	}
	return Permission{needs: needs}
}

// Needs returns the needs of the permission.
func (p Permission) Needs() []model.Need {
	return append([]model.Need(nil), p.needs...)
}

// Allows reports whether identity intersects the permission's needs.
func (p Permission) Allows(identity model.Identity) bool {
	for _, n := range p.needs {
		if identity.Provides(n) {
			return true
		}
	}
	return false
}

var (
	AdminPermission            = AnyOf(model.RoleNeed(model.RoleAdmin))
	OperatorPermission         = AnyOf(model.RoleNeed(model.RoleOperator))
	AdminOrOperatorPermission  = Union(AdminPermission, OperatorPermission)
	AccessKeyCreatorPermission = AnyOf(model.RoleNeed(model.RoleAdmin))
)

// RoleMemberPermission is held by admins and members of the role.
func RoleMemberPermission(roleID int64) Permission {
	return AnyOf(model.RoleNeed(model.RoleAdmin), model.RoleMemberNeed(roleID))
}

// OwnerPermission is held by admins and by the user with the given id.
func OwnerPermission(userID int64) Permission {
	return AnyOf(model.RoleNeed(model.RoleAdmin), model.UserNeed(userID))
}

// Require returns model.ErrForbidden unless principal satisfies perm.
func Require(principal model.Principal, perm Permission) error {
	if !perm.Allows(principal.Identity) {
		return model.ErrForbidden
	}
	return nil
}
