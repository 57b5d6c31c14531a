package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/horseradish/horseradish-server/internal/auth"
	"github.com/horseradish/horseradish-server/internal/mocks"
	"github.com/horseradish/horseradish-server/internal/model"
	"github.com/horseradish/horseradish-server/internal/testutil"
	"github.com/horseradish/horseradish-server/internal/token"
)

type keysFixture struct {
	keys  *mocks.AccessKeyStore
	users *mocks.UserStore
	codec *token.Codec
	svc   *AccessKeys
}

func newKeysFixture(t *testing.T) *keysFixture {
	t.Helper()
	f := &keysFixture{keys: mocks.NewAccessKeyStore(t), users: mocks.NewUserStore(t)}
	codec, issuer := newTestIssuer(t)
	f.codec = codec
	f.svc = NewAccessKeys(f.keys, f.users, issuer, testutil.MakeNoopLogger())
	f.svc.now = func() time.Time { return testNow }
	return f
}

func principalOf(user model.User) model.Principal {
	return model.Principal{User: user, Identity: auth.ResolveIdentity(user)}
}

var (
	alice = model.User{ID: 7, Username: "alice", Active: true}
	root  = model.User{ID: 1, Username: "root", Active: true, Roles: []model.Role{{ID: 1, Name: model.RoleAdmin}}}
)

func TestAccessKeys_Create_SelfNeverExpires(t *testing.T) {
	f := newKeysFixture(t)
	f.users.On("Get", mock.Anything, int64(7)).Return(alice, nil)
	f.keys.On("Create", mock.Anything, model.AccessKey{UserID: 7, Name: "ci", IssuedAt: testNow.Unix(), TTL: model.NeverExpires}).
		Return(model.AccessKey{ID: 3, UserID: 7, Name: "ci", IssuedAt: testNow.Unix(), TTL: model.NeverExpires}, nil)

	key, tok, err := f.svc.Create(context.Background(), principalOf(alice), CreateAccessKeyParams{Name: "ci"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), key.ID)

	claims, err := f.codec.Decode(tok)
	require.NoError(t, err)
	require.NotNil(t, claims.AccessKeyID)
	assert.Equal(t, int64(3), *claims.AccessKeyID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestAccessKeys_Create_WithTTL(t *testing.T) {
	f := newKeysFixture(t)
	ttl := int64(3600)
	f.users.On("Get", mock.Anything, int64(7)).Return(alice, nil)
	f.keys.On("Create", mock.Anything, mock.Anything).
		Return(model.AccessKey{ID: 4, UserID: 7, IssuedAt: testNow.Unix(), TTL: ttl}, nil)

	_, tok, err := f.svc.Create(context.Background(), principalOf(alice), CreateAccessKeyParams{Name: "ci", TTL: &ttl})
	require.NoError(t, err)

	claims, err := f.codec.Decode(tok)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestAccessKeys_Create_MaxTTL(t *testing.T) {
	f := newKeysFixture(t)
	ttl := model.MaxAccessKeyTTL
	f.users.On("Get", mock.Anything, int64(7)).Return(alice, nil)
	f.keys.On("Create", mock.Anything, mock.MatchedBy(func(k model.AccessKey) bool { return k.TTL == ttl })).
		Return(model.AccessKey{ID: 6, UserID: 7, IssuedAt: testNow.Unix(), TTL: ttl}, nil)

	_, tok, err := f.svc.Create(context.Background(), principalOf(alice), CreateAccessKeyParams{Name: "ci", TTL: &ttl})
	require.NoError(t, err)

	claims, err := f.codec.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, testNow.Unix()+ttl, claims.ExpiresAt.Unix())
}

func TestAccessKeys_Create_ForOtherUser(t *testing.T) {
	t.Run("non admin is forbidden", func(t *testing.T) {
		f := newKeysFixture(t)
		_, _, err := f.svc.Create(context.Background(), principalOf(alice), CreateAccessKeyParams{UserID: 1, Name: "x"})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("admin may", func(t *testing.T) {
		f := newKeysFixture(t)
		f.users.On("Get", mock.Anything, int64(7)).Return(alice, nil)
		f.keys.On("Create", mock.Anything, mock.MatchedBy(func(k model.AccessKey) bool { return k.UserID == 7 })).
			Return(model.AccessKey{ID: 5, UserID: 7, TTL: -1}, nil)

		key, _, err := f.svc.Create(context.Background(), principalOf(root), CreateAccessKeyParams{UserID: 7, Name: "x"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), key.UserID)
	})
}

func TestAccessKeys_Create_Validation(t *testing.T) {
	zero, negative := int64(0), int64(-5)
	tooLong, huge := model.MaxAccessKeyTTL+1, int64(math.MaxInt64)
	tests := []struct {
		name   string
		params CreateAccessKeyParams
		field  string
	}{
		{name: "no name", params: CreateAccessKeyParams{}, field: "name"},
		{name: "zero ttl", params: CreateAccessKeyParams{Name: "x", TTL: &zero}, field: "ttl"},
		{name: "negative ttl", params: CreateAccessKeyParams{Name: "x", TTL: &negative}, field: "ttl"},
		{name: "ttl above maximum", params: CreateAccessKeyParams{Name: "x", TTL: &tooLong}, field: "ttl"},
		{name: "ttl that would overflow", params: CreateAccessKeyParams{Name: "x", TTL: &huge}, field: "ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newKeysFixture(t)
			_, _, err := f.svc.Create(context.Background(), principalOf(alice), tt.params)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestAccessKeys_Revoke(t *testing.T) {
	tests := []struct {
		name    string
		caller  model.User
		key     model.AccessKey
		revokes bool
		want    error
	}{
		{name: "owner", caller: alice, key: model.AccessKey{ID: 3, UserID: 7}, revokes: true},
		{name: "admin", caller: root, key: model.AccessKey{ID: 3, UserID: 7}, revokes: true},
		{name: "stranger", caller: model.User{ID: 9}, key: model.AccessKey{ID: 3, UserID: 7}, want: model.ErrForbidden},
		{name: "already revoked", caller: alice, key: model.AccessKey{ID: 3, UserID: 7, Revoked: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newKeysFixture(t)
			f.keys.On("Get", mock.Anything, int64(3)).Return(tt.key, nil)
			if tt.revokes {
				revoked := tt.key
				revoked.Revoked = true
				f.keys.On("Revoke", mock.Anything, int64(3)).Return(revoked, nil)
			}

			key, err := f.svc.Revoke(context.Background(), principalOf(tt.caller), 3)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.True(t, key.Revoked)
		})
	}
}

func TestAccessKeys_List(t *testing.T) {
	f := newKeysFixture(t)
	f.keys.On("ListByUser", mock.Anything, int64(7)).Return([]model.AccessKey{{ID: 3}, {ID: 4}}, nil)

	keys, err := f.svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}
