package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horseradish/horseradish-server/internal/model"
)

func TestManager_SetAndGetPrincipal(t *testing.T) {
	m := NewManager()
	keyID := int64(3)
	principal := model.Principal{
		User:        model.User{ID: 7, Username: "alice"},
		Identity:    model.NewIdentity(model.UserNeed(7)),
		AccessKeyID: &keyID,
	}

	ctx := m.SetPrincipalToContext(stdctx.Background(), principal)

	got, ok := m.GetPrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), got.User.ID)
	assert.True(t, got.Identity.Provides(model.UserNeed(7)))
	assert.Equal(t, &keyID, got.AccessKeyID)
}

func TestManager_GetPrincipal_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetPrincipalFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetPrincipal_ZeroUser(t *testing.T) {
	m := NewManager()
	ctx := m.SetPrincipalToContext(stdctx.Background(), model.Principal{})
	_, ok := m.GetPrincipalFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_ParentContextUntouched(t *testing.T) {
	m := NewManager()
	parent := stdctx.Background()
	_ = m.SetPrincipalToContext(parent, model.Principal{User: model.User{ID: 1}})

	_, ok := m.GetPrincipalFromContext(parent)
	assert.False(t, ok)
}
