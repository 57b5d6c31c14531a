package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/horseradish/horseradish-server/internal/model"
)

// DefaultSessionTTL is the session token lifetime when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// IssueRequest describes the token to issue. AccessKeyID and TTL are only
// set for API-key tokens; TTL is seconds or model.NeverExpires.
type IssueRequest struct {
	UserID      int64
	AccessKeyID *int64
	TTL         *int64
}

// Issuer builds and signs session and API-key tokens.
type Issuer struct {
	codec      *Codec
	sessionTTL time.Duration
	now        func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithSessionTTL sets the lifetime of session tokens.
func WithSessionTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.sessionTTL = ttl
		}
	}
}

// WithIssuerClock overrides the time source for issued-at and expiry.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates an Issuer signing through codec.
func NewIssuer(codec *Codec, opts ...IssuerOption) *Issuer {
	i := &Issuer{codec: codec, sessionTTL: DefaultSessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for req.
func (i *Issuer) Issue(req IssueRequest) (string, error) {
	claims, err := i.Claims(req)
	if err != nil {
		return "", err
	}
	return i.codec.Encode(claims)
}

// Claims computes the claim set Issue would sign for req.
func (i *Issuer) Claims(req IssueRequest) (Claims, error) {
	if req.UserID <= 0 {
		return Claims{}, errors.New("user id is required")
	}
	now := i.now()
	claims := Claims{
		Subject:   req.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.sessionTTL)),
	}
	if req.AccessKeyID == nil {
		return claims, nil
	}

	aid := *req.AccessKeyID
	claims.AccessKeyID = &aid
	if req.TTL == nil {
		return claims, nil
	}
	switch ttl := *req.TTL; {
	case ttl == model.NeverExpires:
		claims.ExpiresAt = nil
	case ttl > model.MaxAccessKeyTTL:
		return Claims{}, errors.New("ttl exceeds the maximum access key lifetime")
	case ttl > 0:
		claims.ExpiresAt = jwt.NewNumericDate(time.Unix(claims.IssuedAt.Unix()+ttl, 0))
	default:
		return Claims{}, errors.New("ttl must be positive or -1")
	}
	return claims, nil
}

// IssueSession signs a session token for userID.
func (i *Issuer) IssueSession(userID int64) (string, error) {
	return i.Issue(IssueRequest{UserID: userID})
}

// IssueAccessKey signs a token bound to key, honouring its ttl.
func (i *Issuer) IssueAccessKey(key model.AccessKey) (string, error) {
	id, ttl := key.ID, key.TTL
	return i.Issue(IssueRequest{UserID: key.UserID, AccessKeyID: &id, TTL: &ttl})
}
