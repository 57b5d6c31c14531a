package token

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of session and API-key tokens.
type Claims struct {
	Subject     int64            `json:"sub"`
	AccessKeyID *int64           `json:"aid,omitempty"`
	IssuedAt    *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt   *jwt.NumericDate `json:"exp,omitempty"`
}

var _ jwt.Claims = Claims{}

// IsAccessKey reports whether the token was issued for an API access key.
func (c Claims) IsAccessKey() bool {
	return c.AccessKeyID != nil
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return c.ExpiresAt, nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return c.IssuedAt, nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c Claims) GetIssuer() (string, error) {
	return "", nil
}

func (c Claims) GetSubject() (string, error) {
	return strconv.FormatInt(c.Subject, 10), nil
}

func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
