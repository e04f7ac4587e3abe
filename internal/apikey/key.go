// Package apikey issues, parses and verifies integration API keys and the
// HMAC request signatures made with them.
//
// A key is presented as "prefix.secret". The prefix is public and indexed;
// only a salted SHA-256 of the secret is stored.
package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	PrefixTag    = "fp_"
	prefixRandom = 12
	secretBytes  = 32
	saltBytes    = 16
)

const base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var ErrMalformedKey = errors.New("malformed api key")

// Issued is a freshly generated key. Plaintext is shown to the caller once and
// never persisted.
type Issued struct {
	Prefix     string
	Secret     string
	Salt       []byte
	SecretHash []byte
}

func (i Issued) Plaintext() string {
	return i.Prefix + "." + i.Secret
}

// Generate creates a new prefix, secret and salt.
func Generate() (Issued, error) {
	prefix, err := randomBase62(prefixRandom)
	if err != nil {
		return Issued{}, fmt.Errorf("generating prefix: %w", err)
	}

	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return Issued{}, fmt.Errorf("generating secret: %w", err)
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return Issued{}, fmt.Errorf("generating salt: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(secret)
	return Issued{
		Prefix:     PrefixTag + prefix,
		Secret:     encoded,
		Salt:       salt,
		SecretHash: Hash(salt, encoded),
	}, nil
}

// Hash returns SHA-256(salt || secret).
func Hash(salt []byte, secret string) []byte {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(secret))
	return h.Sum(nil)
}

// Verify compares the hash of secret against stored in constant time.
func Verify(salt, stored []byte, secret string) bool {
	return subtle.ConstantTimeCompare(Hash(salt, secret), stored) == 1
}

// Parse splits a presented "prefix.secret" value.
func Parse(raw string) (prefix, secret string, err error) {
	prefix, secret, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || prefix == "" || secret == "" || !strings.HasPrefix(prefix, PrefixTag) {
		return "", "", ErrMalformedKey
	}
	return prefix, secret, nil
}

func randomBase62(n int) (string, error) {
	limit := big.NewInt(int64(len(base62)))
	var b strings.Builder
	b.Grow(n)
	for range n {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(base62[idx.Int64()])
	}
	return b.String(), nil
}
