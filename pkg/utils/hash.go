package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// HashString generates a SHA1 hash of a string
func HashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first 12 hex characters of HashString.
// It is used as a log field in place of raw customer text.
func ShortHash(s string) string {
	return HashString(s)[:12]
}
