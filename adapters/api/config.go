package api

import "time"

// ServerConfig holds the HTTP surface settings
type ServerConfig struct {
	// MaxConcurrentRuns bounds optimizations in flight per process
	MaxConcurrentRuns int64 `json:"max_concurrent_runs"`
	// QueueTimeout is how long a request waits for a free run slot
	QueueTimeout time.Duration `json:"queue_timeout"`
	// DefaultStrategies are used when a request selects none
	DefaultStrategies []string `json:"default_strategies"`
	GinMode           string   `json:"gin_mode"`
}

// DefaultServerConfig returns sensible defaults for a single instance
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		MaxConcurrentRuns: 2,
		QueueTimeout:      30 * time.Second,
		GinMode:           "release",
	}
}
