package config

import "time"

// CacheConfig defines settings for the week-view response cache. The week
// view is the hottest endpoint and recomputes the same payload for every
// visitor, so short-lived Redis caching absorbs most of the read load.
// When Enabled is false or no Redis client is configured, caching is off.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// The TTL defaults to a few seconds: long enough to coalesce bursts,
// short enough that a fresh booking shows up almost immediately.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 5*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoi(envStr("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}
