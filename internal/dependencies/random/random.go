package random

import "github.com/google/uuid"

// ID prefixes per entity type
const (
	PrefixPlayer = "p_"
	PrefixRound  = "r_"
	PrefixGroup  = "g_"
)

// Random generates identifiers and can be mocked for testing
type Random interface {
	// ID returns a fresh unique identifier with the given prefix
	ID(prefix string) string
}

// UUIDRandom implements Random using random (v4) UUIDs
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// ID returns prefix followed by a new UUID
func (r *UUIDRandom) ID(prefix string) string {
	return prefix + uuid.NewString()
}
