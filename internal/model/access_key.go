package model

import (
	"context"
	"time"
)

// NeverExpires is the access key ttl sentinel for keys valid until revoked.
const NeverExpires int64 = -1

// MaxAccessKeyTTL is the longest finite access key lifetime, 100 years in seconds.
const MaxAccessKeyTTL int64 = 100 * 365 * 24 * 60 * 60

// ValidAccessKeyTTL reports whether ttl is NeverExpires or a positive number
// of seconds no larger than MaxAccessKeyTTL.
func ValidAccessKeyTTL(ttl int64) bool {
	return ttl == NeverExpires || (ttl > 0 && ttl <= MaxAccessKeyTTL)
}

// AccessKeyStore defines persistence operations for API access keys.
type AccessKeyStore interface {
	Get(ctx context.Context, id int64) (AccessKey, error)
	ListByUser(ctx context.Context, userID int64) ([]AccessKey, error)
	Create(ctx context.Context, key AccessKey) (AccessKey, error)
	Revoke(ctx context.Context, id int64) (AccessKey, error)
}

// AccessKey is an independently revocable bearer credential owned by a user.
// IssuedAt is unix seconds, TTL is seconds or NeverExpires.
type AccessKey struct {
	ID       int64
	UserID   int64
	Name     string
	IssuedAt int64
	TTL      int64
	Revoked  bool
}

// ExpiredAt reports whether the key's own lifetime has passed at now.
func (k AccessKey) ExpiredAt(now time.Time) bool {
	if k.TTL == NeverExpires {
		return false
	}
	return now.Unix()-k.IssuedAt >= k.TTL
}
