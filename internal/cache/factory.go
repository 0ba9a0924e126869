package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/finaly55/opti-credit/pkg/constants"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend    string
	Address    string
	Password   string
	DB         int
	TTL        time.Duration
	MaxEntries int // memory backend only
}

// New builds the backend named in opts. The none backend returns a nil Cache.
func New(opts Options) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", constants.CacheBackendMemory:
		return NewBoundedMemoryCache(opts.TTL, opts.MaxEntries), nil
	case constants.CacheBackendRedis:
		if opts.Address == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedisCache(opts.Address, opts.Password, opts.DB, opts.TTL), nil
	case constants.CacheBackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", opts.Backend)
	}
}
