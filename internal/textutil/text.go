package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CollapseSpaces trims value and replaces every whitespace run with a single
// space.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NFC returns value in Unicode normalization form C.
func NFC(value string) string {
	return norm.NFC.String(value)
}

// NormalizeKey lowercases, NFC-normalizes and collapses whitespace so two
// renditions of the same caption produce the same key material.
func NormalizeKey(value string) string {
	return CollapseSpaces(strings.ToLower(NFC(value)))
}

// ContentKey returns the first n hex characters of the SHA-256 digest of the
// joined parts. n is clamped to the digest length.
func ContentKey(n int, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	encoded := hex.EncodeToString(sum[:])
	if n <= 0 || n > len(encoded) {
		return encoded
	}
	return encoded[:n]
}

// SanitizeToken reduces value to lowercase ASCII letters, digits, '-' and
// '_', mapping any other rune to '_'. Empty results become "unknown".
func SanitizeToken(value string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, strings.TrimSpace(value))
	if out := strings.Trim(mapped, "_-"); out != "" {
		return out
	}
	return "unknown"
}
