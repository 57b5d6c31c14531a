// Package sealed encrypts role credentials at rest with age X25519 keys.
//
// Ciphertext is stored base64 encoded. Empty values are never encrypted so an
// unset role password stays empty in the database.
package sealed

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// ErrNoIdentity is returned by NewAgeSealer when no identity is configured.
var ErrNoIdentity = errors.New("sealed: no identity configured")

// Sealer seals and opens secret values.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(ciphertext string) (string, error)
}

// AgeSealer seals values to the recipient of its identity.
type AgeSealer struct {
	identity  *age.X25519Identity
	recipient *age.X25519Recipient
}

// NewAgeSealer parses an AGE-SECRET-KEY-1... identity.
func NewAgeSealer(identity string) (*AgeSealer, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrNoIdentity
	}
	parsed, err := age.ParseX25519Identity(identity)
	if err != nil {
		return nil, fmt.Errorf("parsing age identity: %w", err)
	}
	return &AgeSealer{identity: parsed, recipient: parsed.Recipient()}, nil
}

// Seal encrypts plaintext and returns it base64 encoded.
func (s *AgeSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	var buf bytes.Buffer
	writer, err := age.Encrypt(&buf, s.recipient)
	if err != nil {
		return "", fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := io.WriteString(writer, plaintext); err != nil {
		return "", fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing age encryption: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Open decrypts a value produced by Seal.
func (s *AgeSealer) Open(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decoding base64 ciphertext: %w", err)
	}
	reader, err := age.Decrypt(bytes.NewReader(raw), s.identity)
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return string(plaintext), nil
}

// Recipient is the public key values are sealed to.
func (s *AgeSealer) Recipient() string {
	return s.recipient.String()
}

// Plain is a Sealer that stores values unchanged. It is used when no identity
// is configured.
type Plain struct{}

func (Plain) Seal(plaintext string) (string, error) { return plaintext, nil }
func (Plain) Open(ciphertext string) (string, error) { return ciphertext, nil }

// New returns an AgeSealer for identity, or Plain when identity is empty.
func New(identity string) (Sealer, error) {
	s, err := NewAgeSealer(identity)
	if errors.Is(err, ErrNoIdentity) {
		return Plain{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GenerateIdentity creates a new X25519 identity and returns the secret key
// and its public recipient.
func GenerateIdentity() (identity, recipient string, err error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return "", "", fmt.Errorf("generating age identity: %w", err)
	}
	return id.String(), id.Recipient().String(), nil
}
