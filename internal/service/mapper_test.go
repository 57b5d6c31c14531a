package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/horseradish/horseradish-server/internal/mocks"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/testutil"
)

// roleTable is an in-memory role lookup backing the mock.
type roleTable map[string]*model.Role

func (t roleTable) wire(m *mocks.RoleStore) {
	m.On("GetByName", mock.Anything, mock.Anything).
		Return(func(_ context.Context, name string) (model.Role, error) {
			r, ok := t[name]
			if !ok {
				return model.Role{}, model.ErrNotFound
			}
			return *r, nil
		}).Maybe()
	m.On("SetThirdParty", mock.Anything, mock.Anything, true).
		Return(func(_ context.Context, id int64, thirdParty bool) (model.Role, error) {
			for _, r := range t {
				if r.ID == id {
					r.ThirdParty = thirdParty
					return *r, nil
				}
			}
			return model.Role{}, model.ErrNotFound
		}).Maybe()
}

func TestGroupMapper_NoConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mapping map[string]string
		key     string
		profile map[string]any
	}{
		{name: "no mapping", key: "groups", profile: map[string]any{"groups": []any{"eng"}}},
		{name: "no key", mapping: map[string]string{"eng": "operator"}, profile: map[string]any{"groups": []any{"eng"}}},
		{name: "key absent from profile", mapping: map[string]string{"eng": "operator"}, key: "groups", profile: map[string]any{"email": "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := mocks.NewRoleStore(t)
			m := NewGroupMapper(roles, tt.mapping, tt.key, testutil.MakeNoopLogger())

			got, err := m.Roles(context.Background(), tt.profile)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestGroupMapper_SortedAndPromoted(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	table := roleTable{
		"admin":    {ID: 1, Name: "admin"},
		"operator": {ID: 2, Name: "operator", ThirdParty: true},
	}
	table.wire(roles)

	m := NewGroupMapper(roles, map[string]string{
		"eng":         "operator",
		"admin-group": "admin",
		"sales":       "read-only",
	}, "groups", testutil.MakeNoopLogger())

	got, err := m.Roles(context.Background(), map[string]any{
		"email":  "a@b.c",
		"groups": []any{"eng", "admin-group", 42},
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "admin", got[0].Name)
	assert.Equal(t, "operator", got[1].Name)
	for _, r := range got {
		assert.True(t, r.ThirdParty)
	}
	roles.AssertNumberOfCalls(t, "SetThirdParty", 1)
}

func TestGroupMapper_LogsNoProfileData(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	roleTable{"admin": {ID: 1, Name: "admin", ThirdParty: true}}.wire(roles)

	var buf bytes.Buffer
	m := NewGroupMapper(roles, map[string]string{"admins": "admin"}, "groups", testutil.MakeBufferLogger(&buf))

	got, err := m.Roles(context.Background(), map[string]any{
		"email":  "alice@example.com",
		"groups": []string{"admins"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Contains(t, buf.String(), "role=admin")
	assert.NotContains(t, buf.String(), "alice@example.com")
}

func TestGroupMapper_UnknownRoleSkipped(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	roleTable{"admin": {ID: 1, Name: "admin", ThirdParty: true}}.wire(roles)

	m := NewGroupMapper(roles, map[string]string{"a": "admin", "b": "missing"}, "groups", testutil.MakeNoopLogger())

	got, err := m.Roles(context.Background(), map[string]any{"groups": []string{"a", "b"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestGroupMapper_StringGroup(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	roleTable{"admin": {ID: 1, Name: "admin", ThirdParty: true}}.wire(roles)

	m := NewGroupMapper(roles, map[string]string{"a": "admin"}, "groups", testutil.MakeNoopLogger())

	got, err := m.Roles(context.Background(), map[string]any{"groups": "a"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGroupMapper_StoreError(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	roles.On("GetByName", mock.Anything, "admin").Return(model.Role{}, model.ErrStoreUnavailable)

	m := NewGroupMapper(roles, map[string]string{"a": "admin"}, "groups", testutil.MakeNoopLogger())

	_, err := m.Roles(context.Background(), map[string]any{"groups": []any{"a"}})
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
}

func TestGroupMapper_PromotionError(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	roles.On("GetByName", mock.Anything, "admin").Return(model.Role{ID: 1, Name: "admin"}, nil)
	roles.On("SetThirdParty", mock.Anything, int64(1), true).Return(model.Role{}, errors.New("boom"))

	m := NewGroupMapper(roles, map[string]string{"a": "admin"}, "groups", testutil.MakeNoopLogger())

	_, err := m.Roles(context.Background(), map[string]any{"groups": []any{"a"}})
	require.Error(t, err)
}

func TestGroupMapper_Idempotent(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	table := roleTable{
		"admin":    {ID: 1, Name: "admin"},
		"operator": {ID: 2, Name: "operator"},
	}
	table.wire(roles)

	m := NewGroupMapper(roles, map[string]string{"x": "admin", "y": "operator"}, "groups", testutil.MakeNoopLogger())
	profile := map[string]any{"groups": []any{"y", "x"}}

	first, err := m.Roles(context.Background(), profile)
	require.NoError(t, err)
	second, err := m.Roles(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	roles.AssertNumberOfCalls(t, "SetThirdParty", 2)
}

func TestGroupMapper_ConfigCopied(t *testing.T) {
	roles := mocks.NewRoleStore(t)
	mapping := map[string]string{"a": "admin"}
	m := NewGroupMapper(roles, mapping, "groups", testutil.MakeNoopLogger())

	delete(mapping, "a")

	roles.On("GetByName", mock.Anything, "admin").Return(model.Role{ID: 1, Name: "admin", ThirdParty: true}, nil)
	got, err := m.Roles(context.Background(), map[string]any{"groups": []any{"a"}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
