package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// layoutRevision is bumped whenever a change to geometry, fonts, or the
// block tables would alter rendered output. Bumping it invalidates every
// cached card at once.
const layoutRevision = "v1"

// Keyer builds cache keys for the things the app caches.
type Keyer interface {
	// CardKey keys a rendered card PNG. Two requests that would render
	// identical cards map to the same key.
	CardKey(signID, lang, request string) string

	// SignKey keys a localized sign record lookup.
	SignKey(lang, signID string) string
}

// DefaultKeyer hashes key components with SHA-256 so arbitrary request
// text never leaks into backend key syntax.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CardKey generates a key for a rendered card.
func (k *DefaultKeyer) CardKey(signID, lang, request string) string {
	return hashKey("card", layoutRevision, signID, lang, request)
}

// SignKey generates a key for a sign record.
func (k *DefaultKeyer) SignKey(lang, signID string) string {
	return fmt.Sprintf("sign:%s:%s", lang, signID)
}

// ScopedKeyer wraps a Keyer with a prefix, giving deployments that share
// one Redis a namespace each.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CardKey generates a prefixed card key.
func (k *ScopedKeyer) CardKey(signID, lang, request string) string {
	return k.prefix + k.inner.CardKey(signID, lang, request)
}

// SignKey generates a prefixed sign key.
func (k *ScopedKeyer) SignKey(lang, signID string) string {
	return k.prefix + k.inner.SignKey(lang, signID)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
