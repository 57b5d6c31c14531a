package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/horseradish/horseradish-server/internal/model"
)

// DefaultAdminUsername is the account created by Bootstrap.
const DefaultAdminUsername = "horseradish"

var defaultRoles = []CreateRoleParams{
	{Name: model.RoleAdmin, Description: "This is the horseradish administrator role."},
	{Name: model.RoleOperator, Description: "This is the horseradish operator role."},
	{Name: model.RoleReadOnly, Description: "This is the horseradish read only role."},
}

// Bootstrap creates the built-in roles and the default admin account if they
// do not exist yet. It is safe to run repeatedly.
func Bootstrap(ctx context.Context, users *Users, roles *Roles, adminPassword string) (model.User, error) {
	for _, params := range defaultRoles {
		_, err := roles.GetByName(ctx, params.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		if _, err := roles.Create(ctx, params); err != nil {
			return model.User{}, err
		}
	}

	existing, err := users.userStore.GetByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get default admin: %w", err)
	}

	return users.Create(ctx, CreateUserParams{
		Username: DefaultAdminUsername,
		Email:    DefaultAdminUsername + "@nobody",
		Password: adminPassword,
		Active:   true,
		Roles:    []string{model.RoleAdmin},
	})
}
