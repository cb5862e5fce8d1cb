package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// CacheTTL is how long a completed search stays servable from cache.
const CacheTTL = time.Hour

// CacheKey derives a stable key for a query. Case and surrounding whitespace
// do not affect the key.
func CacheKey(location, cuisine, mealtime string) string {
	raw := fmt.Sprintf("%s:%s:%s",
		strings.ToLower(strings.TrimSpace(location)),
		strings.ToLower(strings.TrimSpace(cuisine)),
		strings.ToLower(strings.TrimSpace(mealtime)),
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
