// Package fingerprint turns free-text queries into stable cache keys.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// length of a hex-encoded fingerprint
const Size = sha256.Size * 2

// lower-cases, trims and collapses whitespace runs to a single space
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// returns the hex SHA-256 of the normalized query
func Fingerprint(query string) string {
	sum := sha256.Sum256([]byte(Normalize(query)))
	return hex.EncodeToString(sum[:])
}

// reports whether s looks like a fingerprint produced by Fingerprint
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}

	_, err := hex.DecodeString(s)
	return err == nil && strings.ToLower(s) == s
}
