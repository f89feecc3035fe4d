package redis

import (
	"fmt"

	"github.com/mcoot/tilescore/internal/storage"
)

// Key prefix for all tournament data
const keyPrefix = "tilescore"

// storageKey returns the Redis key for a persisted tournament key
func storageKey(namespace string, key storage.Key) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, key)
}
