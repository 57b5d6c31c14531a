package model

import "context"

// Built-in role names.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleReadOnly = "read-only"
)

// RoleStore defines persistence operations for roles.
type RoleStore interface {
	Get(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context, page Page) ([]Role, int, error)
	Members(ctx context.Context, roleID int64) ([]User, error)
	SetMembers(ctx context.Context, roleID int64, userIDs []int64) error
	Create(ctx context.Context, role Role) (Role, error)
	Update(ctx context.Context, role Role) (Role, error)
	SetThirdParty(ctx context.Context, id int64, thirdParty bool) (Role, error)
	Delete(ctx context.Context, id int64) error
}

// Role groups users. Username and Password optionally carry a third-party
// service credential; Password is plaintext in memory and sealed at rest.
type Role struct {
	ID          int64
	Name        string
	Description string
	Username    string
	Password    string
	ThirdParty  bool
	UserIDs     []int64
}
