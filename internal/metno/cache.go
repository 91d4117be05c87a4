// SPDX-License-Identifier: MPL-2.0

package metno

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// responseCache stores decoded "data" bodies keyed by full request URL.
// Methods are safe on a nil receiver so the Client can treat a disabled
// cache and an enabled one uniformly.
type responseCache struct {
	store *gocache.Cache
}

// newResponseCache creates a cache whose entries expire after ttl. Expired
// entries are swept at twice the TTL, which keeps the janitor cheap for the
// short TTLs the availability lookup uses.
func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{store: gocache.New(ttl, 2*ttl)}
}

// get returns the cached body for reqURL, if present and unexpired.
func (c *responseCache) get(reqURL string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.store.Get(reqURL)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// put stores a successfully decoded body under its request URL.
func (c *responseCache) put(reqURL string, body []byte) {
	if c == nil {
		return
	}
	c.store.Set(reqURL, body, gocache.DefaultExpiration)
}
