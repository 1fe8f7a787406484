package lazy

import "github.com/coregx/redfa/dfa/subset"

// Config configures the Lazy DFA.
//
// The cache bounds memory, not the language: a pattern whose full DFA is
// larger than MaxStates still matches correctly, it just rebuilds states.
type Config struct {
	// MaxStates is the maximum number of DFA states cached at once.
	// When the cache is full it is cleared and states are rebuilt on demand.
	//
	// Default: 10,000
	MaxStates uint32

	// MaxCacheClears is how many times one Accepts call may clear the cache
	// before giving up on the DFA and simulating the ε-NFA instead.
	// Zero falls back the first time the cache fills.
	//
	// Default: 5
	MaxCacheClears int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:      10_000,
		MaxCacheClears: 5,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &subset.DFAError{
			Kind:    subset.InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	if c.MaxCacheClears < 0 {
		return &subset.DFAError{
			Kind:    subset.InvalidConfig,
			Message: "MaxCacheClears must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}

// WithMaxCacheClears returns a new config with the specified clear limit
func (c Config) WithMaxCacheClears(limit int) Config {
	c.MaxCacheClears = limit
	return c
}
