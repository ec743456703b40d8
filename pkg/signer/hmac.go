package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash"
	"time"
)

// ErrExpired is returned for structurally valid tokens past their expiry.
var ErrExpired = errors.New("session token expired")

// Codec signs and verifies session tokens. Implementations must be safe for
// concurrent use.
type Codec interface {
	EncodeSession(uid string, expires time.Time) string
	DecodeSession(token string) (uid string, err error)
}

// HMAC implements Codec using HMAC-SHA256 for integrity.
// Tokens are base64 URL without padding: expiry(int64) || uid || sig.
type HMAC struct {
	key []byte
	h   func() hash.Hash
	now func() time.Time
}

// NewHMAC creates an HMAC signer with the provided secret key.
func NewHMAC(key []byte) *HMAC {
	return &HMAC{key: append([]byte(nil), key...), h: sha256.New, now: time.Now}
}

// seal signs the payload and returns a base64url token payload||sig.
func (c *HMAC) seal(payload []byte) string {
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	sig := mac.Sum(nil)
	buf := append(payload, sig...)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// open verifies the token and returns the payload bytes.
func (c *HMAC) open(token string, minPayloadLen int) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	if len(raw) < minPayloadLen+32 {
		return nil, errors.New("invalid_token_length")
	}
	payload := raw[:len(raw)-32]
	sig := raw[len(raw)-32:]
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	expected := mac.Sum(nil)
	if !hmac.Equal(sig, expected) {
		return nil, errors.New("invalid_token_signature")
	}
	return payload, nil
}

// EncodeSession issues a signed session token for the identity.
func (c *HMAC) EncodeSession(uid string, expires time.Time) string {
	uidBytes := []byte(uid)
	payload := make([]byte, 8+len(uidBytes))
	binary.BigEndian.PutUint64(payload[0:8], uint64(expires.Unix()))
	copy(payload[8:], uidBytes)
	return c.seal(payload)
}

// DecodeSession verifies a token and returns the identity it names.
func (c *HMAC) DecodeSession(token string) (string, error) {
	payload, err := c.open(token, 9)
	if err != nil {
		return "", err
	}
	exp := time.Unix(int64(binary.BigEndian.Uint64(payload[0:8])), 0)
	if c.now().After(exp) {
		return "", ErrExpired
	}
	return string(payload[8:]), nil
}
