package indexer

import "runtime"

// Config holds grouping parameters.
type Config struct {
	Workers   int // neighbor-discovery goroutines, default GOMAXPROCS
	BatchSize int // fingerprints claimed per work-cursor advance, default 256
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers:   runtime.GOMAXPROCS(0),
		BatchSize: 256,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 256
	}
	return c
}
