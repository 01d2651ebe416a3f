package config

import (
	"os"
	"time"
)

// CacheConfig controls the Redis response cache applied to the public
// seat-view endpoints. Only GET responses are cached; the TTL is kept
// short because seat availability changes with every checkout.
type CacheConfig struct {
	Enabled bool
	Prefix  string
	TTL     time.Duration
}

// LoadCacheConfig reads CACHE_* environment variables with defaults
// suited to a seat-picker UI polling availability.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		Prefix:  envStr("CACHE_PREFIX", "seatcache"),
		TTL:     envDur("CACHE_TTL", 5*time.Second),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes", "on":
		return true
	case "0", "false", "FALSE", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
