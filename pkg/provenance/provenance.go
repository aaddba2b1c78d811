// Package provenance provides content hashing for chunk-level provenance
// metadata.
package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Verification errors.
var (
	ErrNoHash       = errors.New("no hash recorded")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Stamp ties a piece of chunk text to its source record.
type Stamp struct {
	Restaurant  string    `json:"restaurant"`
	Hash        string    `json:"hash"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewStamp hashes the content and records the generation time.
func NewStamp(restaurant, content string) Stamp {
	return Stamp{
		Restaurant:  restaurant,
		Hash:        Hash(content),
		GeneratedAt: time.Now().UTC(),
	}
}

// Hash computes the SHA-256 hex digest of the content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))

	return hex.EncodeToString(sum[:])
}

// Verify checks that the content still matches the stamped hash.
func (s Stamp) Verify(content string) error {
	if s.Hash == "" {
		return ErrNoHash
	}

	if calculated := Hash(content); calculated != s.Hash {
		return fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, s.Hash, calculated)
	}

	return nil
}
