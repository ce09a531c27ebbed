package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithPrefix returns prefix + "-" + 12 hex chars, e.g. "req-3f9a6a1b3d54".
// Used for short human-facing references (request ids, report runs).
func WithPrefix(prefix string) string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	p := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(prefix)), "-")
	if p == "" {
		return hex.EncodeToString(b)
	}
	return p + "-" + hex.EncodeToString(b)
}
