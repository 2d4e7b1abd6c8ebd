// Package xxhash fingerprints snapshot content with xxHash64.
package xxhash

import (
	"fmt"

	"github.com/SACCSF/linkedin"
	"github.com/cespare/xxhash/v2"
)

// Ensure Hasher implements linkedin.ContentHasher at compile time.
var _ linkedin.ContentHasher = (*Hasher)(nil)

// Hasher computes content fingerprints used to detect identical snapshots.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns the xxHash64 of content as 16 lowercase hex digits.
func (h *Hasher) Hash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
