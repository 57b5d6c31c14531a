package context

import (
	"context"

	"github.com/horseradish/horseradish-server/internal/model"
)

type principalKey struct{}

// Manager binds the authenticated principal to request contexts. It is shared
// by the HTTP and gRPC transports.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a copy of ctx carrying principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext returns the principal bound to ctx, if any.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(model.Principal)
	if !ok || principal.User.ID == 0 {
		return model.Principal{}, false
	}
	return principal, true
}
