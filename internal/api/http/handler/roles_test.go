package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apicontext "github.com/horseradish/horseradish-server/internal/api/context"
	"github.com/horseradish/horseradish-server/internal/api/http/handler/mocks"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
	"github.com/horseradish/horseradish-server/internal/testutil"
)

func newRolesHandler(t *testing.T) (*Roles, *mocks.RoleService) {
	svc := mocks.NewRoleService(t)
	return NewRoles(svc, apicontext.NewManager(), testutil.MakeNoopLogger()), svc
}

var dbadmins = model.Role{
	ID:          12,
	Name:        "dbadmins",
	Description: "database administrators",
	Username:    "svc-db",
	Password:    "hunter2",
	UserIDs:     []int64{2},
}

func TestRoles_List_AdminSeesAll(t *testing.T) {
	t.Parallel()

	h, svc := newRolesHandler(t)
	svc.On("List", mock.Anything, model.DefaultPage).Return([]model.Role{dbadmins}, 1, nil)

	rec := serve(t, "GET /roles", h.List, http.MethodGet, "/roles", nil, principalOf(adminUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	var resp listResponse[roleView]
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "svc-db", resp.Items[0].Username)
}

func TestRoles_List_MemberSeesOwn(t *testing.T) {
	t.Parallel()

	h, _ := newRolesHandler(t)

	rec := serve(t, "GET /roles", h.List, http.MethodGet, "/roles?count=1&page=2", nil, principalOf(plainUser))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse[roleView]
	decodeBody(t, rec, &resp)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "dbadmins", resp.Items[0].Name)

	rec = serve(t, "GET /roles", h.List, http.MethodGet, "/roles?page=9", nil, principalOf(plainUser))
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Items)
}

func TestRoles_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		user       model.User
		target     string
		callSvc    bool
		wantStatus int
	}{
		{name: "member", user: plainUser, target: "/roles/12", callSvc: true, wantStatus: http.StatusOK},
		{name: "admin", user: adminUser, target: "/roles/12", callSvc: true, wantStatus: http.StatusOK},
		{name: "non member", user: plainUser, target: "/roles/13", wantStatus: http.StatusForbidden},
		{name: "bad id", user: adminUser, target: "/roles/zero", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, svc := newRolesHandler(t)
			if tt.callSvc {
				svc.On("Get", mock.Anything, int64(12)).Return(dbadmins, nil)
			}

			rec := serve(t, "GET /roles/{id}", h.Get, http.MethodGet, tt.target, nil, principalOf(tt.user))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestRoles_Members(t *testing.T) {
	t.Parallel()

	h, svc := newRolesHandler(t)
	svc.On("Members", mock.Anything, int64(12)).Return([]model.User{plainUser}, nil)

	rec := serve(t, "GET /roles/{id}/users", h.Members, http.MethodGet, "/roles/12/users", nil, principalOf(plainUser))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, "GET /roles/{id}/users", h.Members, http.MethodGet, "/roles/99/users", nil, principalOf(plainUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoles_CreateUpdateDelete(t *testing.T) {
	t.Parallel()

	h, svc := newRolesHandler(t)
	svc.On("Create", mock.Anything, service.CreateRoleParams{
		Name:     "dbadmins",
		Username: "svc-db",
		Password: "hunter2",
		UserIDs:  []int64{2},
	}).Return(dbadmins, nil)
	svc.On("Update", mock.Anything, int64(12), service.UpdateRoleParams{Name: "dba"}).Return(dbadmins, nil)
	svc.On("Delete", mock.Anything, int64(12)).Return(nil)

	rec := serve(t, "POST /roles", h.Create, http.MethodPost, "/roles",
		createRoleRequest{Name: "dbadmins", Username: "svc-db", Password: "hunter2", UserIDs: []int64{2}}, principalOf(adminUser))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	rec = serve(t, "PUT /roles/{id}", h.Update, http.MethodPut, "/roles/12", `{"name":"dba"}`, principalOf(adminUser))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, "DELETE /roles/{id}", h.Delete, http.MethodDelete, "/roles/12", nil, principalOf(adminUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Role deleted", messageOf(t, rec))
}

func TestRoles_MutationsRequireAdmin(t *testing.T) {
	t.Parallel()

	h, _ := newRolesHandler(t)
	member := principalOf(plainUser)

	assert.Equal(t, http.StatusForbidden,
		serve(t, "POST /roles", h.Create, http.MethodPost, "/roles", createRoleRequest{Name: "x"}, member).Code)
	assert.Equal(t, http.StatusForbidden,
		serve(t, "PUT /roles/{id}", h.Update, http.MethodPut, "/roles/12", updateRoleRequest{Name: "x"}, member).Code)
	assert.Equal(t, http.StatusForbidden,
		serve(t, "DELETE /roles/{id}", h.Delete, http.MethodDelete, "/roles/12", nil, member).Code)
}
