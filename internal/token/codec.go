package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// Codec signs and verifies tokens with a symmetric HMAC secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec creates a HS256 codec. The secret is copied and never mutated.
func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	c := &Codec{
		secret: append([]byte(nil), secret...),
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode signs claims into a compact token.
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of token and returns its claims.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, classify(err)
	}
	return claims, nil
}

// PeekHeader returns the header segment of token without verifying it.
func (c *Codec) PeekHeader(tokenString string) (map[string]interface{}, error) {
	return PeekHeader(tokenString)
}

// PeekHeader returns the header segment of token without verifying it.
func PeekHeader(tokenString string) (map[string]interface{}, error) {
	if strings.Count(tokenString, ".") < 2 {
		return nil, fmt.Errorf("%w: not enough segments", ErrTokenMalformed)
	}
	headerSegment := tokenString[:strings.Index(tokenString, ".")]

	raw, err := jwt.NewParser(jwt.WithPaddingAllowed()).DecodeSegment(headerSegment)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid header padding", ErrTokenMalformed)
	}
	header := map[string]interface{}{}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: invalid header json", ErrTokenMalformed)
	}
	return header, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}
