package config

import (
	"fmt"
	"strings"

	"github.com/finaly55/opti-credit/pkg/constants"
)

// Normalize fills in the cache defaults: the memory backend, a one hour ttl
// and the default entry bound.
func (c *CacheConfig) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = constants.CacheBackendMemory
	}
	if c.TTL == 0 {
		c.TTL = constants.DefaultCacheTTL
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = constants.DefaultCacheMaxEntries
	}
}

// Validate reports a cache section that cannot be turned into a backend.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case constants.CacheBackendMemory, constants.CacheBackendNone:
	case constants.CacheBackendRedis:
		if strings.TrimSpace(c.Address) == "" {
			return fmt.Errorf("redis cache requires an address")
		}
		if c.DB < 0 {
			return fmt.Errorf("redis db must not be negative, got %d", c.DB)
		}
	default:
		return fmt.Errorf("unsupported cache backend %q, expected one of %s, %s, %s",
			c.Backend, constants.CacheBackendMemory, constants.CacheBackendRedis, constants.CacheBackendNone)
	}

	if c.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.TTL)
	}
	return nil
}
