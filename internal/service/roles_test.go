package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/horseradish/horseradish-server/internal/mocks"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/testutil"
)

func TestRoles_Create(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())

	store.On("Create", mock.Anything, model.Role{Name: "db", Username: "svc", Password: "pw"}).
		Return(model.Role{ID: 3, Name: "db"}, nil)
	store.On("SetMembers", mock.Anything, int64(3), []int64{7}).Return(nil)
	store.On("Get", mock.Anything, int64(3)).Return(model.Role{ID: 3, Name: "db", UserIDs: []int64{7}}, nil)

	role, err := svc.Create(context.Background(), CreateRoleParams{Name: "db", Username: "svc", Password: "pw", UserIDs: []int64{7}})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, role.UserIDs)
}

func TestRoles_Create_RequiresName(t *testing.T) {
	svc := NewRoles(mocks.NewRoleStore(t), testutil.MakeNoopLogger())

	_, err := svc.Create(context.Background(), CreateRoleParams{Name: "  "})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestRoles_Create_Duplicate(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())
	store.On("Create", mock.Anything, mock.Anything).Return(model.Role{}, model.ErrAlreadyExists)

	_, err := svc.Create(context.Background(), CreateRoleParams{Name: "admin"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestRoles_Update_KeepsCredentialsAndFlag(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())

	existing := model.Role{ID: 3, Name: "db", Username: "svc", Password: "pw", ThirdParty: true}
	store.On("Get", mock.Anything, int64(3)).Return(existing, nil)
	store.On("Update", mock.Anything, model.Role{ID: 3, Name: "database", Description: "new", Username: "svc", Password: "pw", ThirdParty: true}).
		Return(existing, nil)

	_, err := svc.Update(context.Background(), 3, UpdateRoleParams{Name: "database", Description: "new"})
	require.NoError(t, err)
	store.AssertNotCalled(t, "SetMembers", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetThirdParty", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoles_Update_Members(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())

	store.On("Get", mock.Anything, int64(3)).Return(model.Role{ID: 3, Name: "db"}, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(model.Role{ID: 3}, nil)
	store.On("SetMembers", mock.Anything, int64(3), []int64{}).Return(nil)

	_, err := svc.Update(context.Background(), 3, UpdateRoleParams{Name: "db", UserIDs: []int64{}})
	require.NoError(t, err)
}

func TestRoles_Update_NotFound(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())
	store.On("Get", mock.Anything, int64(3)).Return(model.Role{}, model.ErrNotFound)

	_, err := svc.Update(context.Background(), 3, UpdateRoleParams{Name: "db"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRoles_SetThirdParty(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())
	store.On("SetThirdParty", mock.Anything, int64(3), true).Return(model.Role{ID: 3, ThirdParty: true}, nil)

	role, err := svc.SetThirdParty(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, role.ThirdParty)
}

func TestRoles_Delete(t *testing.T) {
	store := mocks.NewRoleStore(t)
	svc := NewRoles(store, testutil.MakeNoopLogger())
	store.On("Delete", mock.Anything, int64(3)).Return(nil).Once()
	store.On("Delete", mock.Anything, int64(4)).Return(model.ErrNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), model.ErrNotFound)
}
