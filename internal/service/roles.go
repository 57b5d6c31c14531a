package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// CreateRoleParams describes a new role. Password is the plaintext third
// party credential and is sealed by the store.
type CreateRoleParams struct {
	Name        string
	Description string
	Username    string
	Password    string
	UserIDs     []int64
}

// UpdateRoleParams replaces name, description and, when non-nil, members.
// Credentials and the third party flag are left as stored.
type UpdateRoleParams struct {
	Name        string
	Description string
	UserIDs     []int64
}

type Roles struct {
	roleStore model.RoleStore
	logger    *logger.Logger
}

func NewRoles(roleStore model.RoleStore, logger *logger.Logger) *Roles {
	return &Roles{
		roleStore: roleStore,
		logger:    logger,
	}
}

func (s *Roles) Get(ctx context.Context, id int64) (model.Role, error) {
	role, err := s.roleStore.Get(ctx, id)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role by id: %w", err)
	}
	return role, nil
}

func (s *Roles) GetByName(ctx context.Context, name string) (model.Role, error) {
	role, err := s.roleStore.GetByName(ctx, name)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

func (s *Roles) List(ctx context.Context, page model.Page) ([]model.Role, int, error) {
	roles, total, err := s.roleStore.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, total, nil
}

func (s *Roles) Members(ctx context.Context, id int64) ([]model.User, error) {
	users, err := s.roleStore.Members(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list role members: %w", err)
	}
	return users, nil
}

func (s *Roles) Create(ctx context.Context, params CreateRoleParams) (model.Role, error) {
	if strings.TrimSpace(params.Name) == "" {
		return model.Role{}, model.NewValidationError("name", "is required")
	}

	role, err := s.roleStore.Create(ctx, model.Role{
		Name:        params.Name,
		Description: params.Description,
		Username:    params.Username,
		Password:    params.Password,
	})
	if err != nil {
		s.logger.Error("Roles service: failed to create role",
			"name", params.Name,
			"error", err.Error())
		return model.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	if len(params.UserIDs) > 0 {
		if err := s.roleStore.SetMembers(ctx, role.ID, params.UserIDs); err != nil {
			return model.Role{}, fmt.Errorf("failed to set role members: %w", err)
		}
	}

	s.logger.Info("Roles service: role created",
		"role_id", role.ID,
		"name", role.Name)

	return s.Get(ctx, role.ID)
}

func (s *Roles) Update(ctx context.Context, id int64, params UpdateRoleParams) (model.Role, error) {
	if strings.TrimSpace(params.Name) == "" {
		return model.Role{}, model.NewValidationError("name", "is required")
	}

	existing, err := s.roleStore.Get(ctx, id)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to get role by id: %w", err)
	}

	existing.Name = params.Name
	existing.Description = params.Description
	if _, err := s.roleStore.Update(ctx, existing); err != nil {
		return model.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	if params.UserIDs != nil {
		if err := s.roleStore.SetMembers(ctx, id, params.UserIDs); err != nil {
			return model.Role{}, fmt.Errorf("failed to set role members: %w", err)
		}
	}

	s.logger.Info("Roles service: role updated",
		"role_id", id)

	return s.Get(ctx, id)
}

// SetThirdParty flags or unflags a role as granted by the identity provider.
func (s *Roles) SetThirdParty(ctx context.Context, id int64, thirdParty bool) (model.Role, error) {
	role, err := s.roleStore.SetThirdParty(ctx, id, thirdParty)
	if err != nil {
		return model.Role{}, fmt.Errorf("failed to set role third party: %w", err)
	}
	return role, nil
}

func (s *Roles) Delete(ctx context.Context, id int64) error {
	if err := s.roleStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	s.logger.Info("Roles service: role deleted",
		"role_id", id)
	return nil
}
