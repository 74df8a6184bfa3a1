// Package id generates the prefixed, URL-safe identifiers exposed over the
// API ("sr_xK9mP2vL3nQa"). Database primary keys never leave the service.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the length of the random part of a generated ID.
	DefaultLength = 14
)

const (
	PrefixServiceRequest = "sr"
	PrefixAttachment     = "att"
	PrefixUser           = "usr"
)

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a cryptographically random base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix returns "<prefix>_<random>".
func GenerateWithPrefix(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

func NewServiceRequestID() (string, error) { return GenerateWithPrefix(PrefixServiceRequest) }
func NewAttachmentID() (string, error)     { return GenerateWithPrefix(PrefixAttachment) }
func NewUserID() (string, error)           { return GenerateWithPrefix(PrefixUser) }

// Validate checks that sid carries the expected prefix and a well-formed
// base62 body.
func Validate(sid, expectedPrefix string) error {
	prefix, body, ok := strings.Cut(sid, "_")
	if !ok {
		return fmt.Errorf("invalid id format: %q", sid)
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid id prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	if body == "" {
		return fmt.Errorf("invalid id format: %q", sid)
	}
	for i := 0; i < len(body); i++ {
		if !strings.ContainsRune(alphabet, rune(body[i])) {
			return fmt.Errorf("invalid id character %q in %q", body[i], sid)
		}
	}
	return nil
}
