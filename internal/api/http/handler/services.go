package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/service"
)

// UserService manages local accounts.
type UserService interface {
	Get(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context, page model.Page) ([]model.User, int, error)
	Create(ctx context.Context, params service.CreateUserParams) (model.User, error)
	Update(ctx context.Context, id int64, params service.UpdateUserParams) (model.User, error)
	Login(ctx context.Context, username, password string) (string, model.User, error)
}

// RoleService manages roles and their members.
type RoleService interface {
	Get(ctx context.Context, id int64) (model.Role, error)
	List(ctx context.Context, page model.Page) ([]model.Role, int, error)
	Members(ctx context.Context, id int64) ([]model.User, error)
	Create(ctx context.Context, params service.CreateRoleParams) (model.Role, error)
	Update(ctx context.Context, id int64, params service.UpdateRoleParams) (model.Role, error)
	Delete(ctx context.Context, id int64) error
}

// AccessKeyService manages API access keys.
type AccessKeyService interface {
	Create(ctx context.Context, caller model.Principal, params service.CreateAccessKeyParams) (model.AccessKey, string, error)
	List(ctx context.Context, userID int64) ([]model.AccessKey, error)
	Revoke(ctx context.Context, caller model.Principal, id int64) (model.AccessKey, error)
}

// ExportService writes and reads snapshots in object storage.
type ExportService interface {
	Export(ctx context.Context) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// caller returns the principal bound by the authenticate middleware.
func caller(cm model.ContextManager, r *http.Request) (model.Principal, error) {
	p, ok := cm.GetPrincipalFromContext(r.Context())
	if !ok {
		return model.Principal{}, &auth.Rejection{Reason: auth.ReasonMissingAuthorization}
	}
	return p, nil
}

// authorize returns the caller when it holds perm.
func authorize(cm model.ContextManager, r *http.Request, perm auth.Permission) (model.Principal, error) {
	p, err := caller(cm, r)
	if err != nil {
		return model.Principal{}, err
	}
	if err := auth.Require(p, perm); err != nil {
		return model.Principal{}, err
	}
	return p, nil
}
