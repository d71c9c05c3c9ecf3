package config

import "time"

// CacheConfig controls the Redis response cache used on the public share
// view and the dashboard milestone reads. Only GET responses with a 200
// status are cached; anything else always goes to the database.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads CACHE_* environment variables. The default TTL is
// short on purpose: the public page tolerates 30 seconds of staleness but a
// revoked invitation must not keep serving for long.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
