package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/model"
)

// RoleLookup is the part of the role store the group mapper needs.
type RoleLookup interface {
	GetByName(ctx context.Context, name string) (model.Role, error)
	SetThirdParty(ctx context.Context, id int64, thirdParty bool) (model.Role, error)
}

// GroupMapper maps identity provider groups found in a user profile to local roles.
type GroupMapper struct {
	roles         RoleLookup
	groupsToRoles map[string]string
	groupsKey     string
	logger        *logger.Logger
}

func NewGroupMapper(roles RoleLookup, groupsToRoles map[string]string, groupsKey string, logger *logger.Logger) *GroupMapper {
	mapping := make(map[string]string, len(groupsToRoles))
	for group, role := range groupsToRoles {
		mapping[group] = role
	}
	return &GroupMapper{
		roles:         roles,
		groupsToRoles: mapping,
		groupsKey:     groupsKey,
		logger:        logger,
	}
}

// Roles returns, in sorted group order, every configured role whose group is
// listed in profile. Roles not yet flagged third_party are promoted. Unknown
// roles are skipped; other lookup failures abort the mapping.
func (m *GroupMapper) Roles(ctx context.Context, profile map[string]any) ([]model.Role, error) {
	if len(m.groupsToRoles) == 0 || m.groupsKey == "" {
		return nil, nil
	}
	raw, ok := profile[m.groupsKey]
	if !ok {
		return nil, nil
	}
	member := profileGroups(raw)

	groups := make([]string, 0, len(m.groupsToRoles))
	for group := range m.groupsToRoles {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var roles []model.Role
	for _, group := range groups {
		if _, ok := member[group]; !ok {
			continue
		}
		roleName := m.groupsToRoles[group]

		role, err := m.roles.GetByName(ctx, roleName)
		if errors.Is(err, model.ErrNotFound) {
			m.logger.Warn("Group mapper: configured role does not exist",
				"group", group,
				"role", roleName)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get role %q: %w", roleName, err)
		}

		m.logger.Info("Group mapper: role available through idp group",
			"role", role.Name,
			"group", group)

		if !role.ThirdParty {
			role, err = m.roles.SetThirdParty(ctx, role.ID, true)
			if err != nil {
				return nil, fmt.Errorf("failed to mark role %q third party: %w", roleName, err)
			}
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func profileGroups(raw any) map[string]struct{} {
	set := map[string]struct{}{}
	switch v := raw.(type) {
	case string:
		set[v] = struct{}{}
	case []string:
		for _, g := range v {
			set[g] = struct{}{}
		}
	case []any:
		for _, g := range v {
			if s, ok := g.(string); ok {
				set[s] = struct{}{}
			}
		}
	}
	return set
}
