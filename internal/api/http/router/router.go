package router

import (
	"net/http"

	"github.com/horseradish/horseradish-server/internal/api/http/handler"
	"github.com/horseradish/horseradish-server/internal/api/http/middleware"
	"github.com/horseradish/horseradish-server/internal/logger"
	"github.com/horseradish/horseradish-server/internal/metrics"
	"github.com/horseradish/horseradish-server/internal/model"
)

// Dependencies are the services the HTTP API is served from.
type Dependencies struct {
	Authenticator  middleware.Authenticator
	Users          handler.UserService
	Roles          handler.RoleService
	AccessKeys     handler.AccessKeyService
	Exports        handler.ExportService
	DB             handler.Pinger
	ContextManager model.ContextManager
	Metrics        *metrics.Metrics
	LoginLimit     *middleware.RateLimit
}

// Router builds the HTTP handler tree.
type Router struct {
	deps   Dependencies
	logger *logger.Logger
}

// New creates new HTTP Router instance.
func New(deps Dependencies, logger *logger.Logger) *Router {
	return &Router{deps: deps, logger: logger}
}

// Register mounts every route and wraps the mux with request id, logging
// and metrics middleware.
func (r *Router) Register() http.Handler {
	d := r.deps
	authenticate := middleware.NewAuthenticate(d.Authenticator, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	authHandler := handler.NewAuth(d.Users, d.ContextManager, r.logger)
	users := handler.NewUsers(d.Users, d.ContextManager, r.logger)
	roles := handler.NewRoles(d.Roles, d.ContextManager, r.logger)
	keys := handler.NewAccessKeys(d.AccessKeys, d.ContextManager, r.logger)
	exports := handler.NewExports(d.Exports, d.ContextManager, r.logger)
	health := handler.NewHealth(d.DB, r.logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", health.Check)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	mux.Handle("POST /auth/login", d.LoginLimit.Handle(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /auth/me", protected(authHandler.Me))

	mux.Handle("GET /users", protected(users.List))
	mux.Handle("POST /users", protected(users.Create))
	mux.Handle("GET /users/{id}", protected(users.Get))
	mux.Handle("PUT /users/{id}", protected(users.Update))

	mux.Handle("GET /roles", protected(roles.List))
	mux.Handle("POST /roles", protected(roles.Create))
	mux.Handle("GET /roles/{id}", protected(roles.Get))
	mux.Handle("PUT /roles/{id}", protected(roles.Update))
	mux.Handle("DELETE /roles/{id}", protected(roles.Delete))
	mux.Handle("GET /roles/{id}/users", protected(roles.Members))

	mux.Handle("POST /keys", protected(keys.Create))
	mux.Handle("GET /keys", protected(keys.List))
	mux.Handle("PUT /keys/{id}/revoke", protected(keys.Revoke))

	mux.Handle("POST /exports", protected(exports.Create))
	mux.Handle("GET /exports/{name}", protected(exports.Get))

	logging := middleware.NewLogging(r.logger)
	return middleware.RequestID(logging.Handle(d.Metrics.Instrument(mux)))
}
