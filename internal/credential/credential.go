// Package credential implements secret generation, hashing and verification
// for account credentials. Plaintext secrets exist only in memory and in the
// single provisioning response; they are never persisted or logged.
package credential

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// tempSecretBytes is the entropy of a temporary onboarding secret.
// Hex-encoded it yields an 8-character, URL-safe, one-time password.
const tempSecretBytes = 4

// DummyDigest is a valid bcrypt digest of an unused throwaway value. Login
// verifies against it when the username does not resolve, so that lookup
// misses and password mismatches take comparable time.
const DummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// IssueTemporary produces a short random secret for one-time display at
// provisioning. The caller is responsible for hashing it before storage.
func IssueTemporary() (string, error) {
	b := make([]byte, tempSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Hasher produces and verifies salted one-way digests with a tunable bcrypt
// work factor. The zero cost selects the library default.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher. A cost outside bcrypt's supported range
// (including 0) falls back to bcrypt.DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash computes a salted digest of secret. Each call salts freshly, so two
// digests of the same secret never compare equal; use Verify, never equality.
func (h Hasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. Malformed digests and any
// internal failure report false; no detail is surfaced.
func (h Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
