package subset

// Config configures subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states Build may create.
	// Construction stops with ErrStateLimitExceeded when a new state would
	// exceed it.
	//
	// Default: 10,000 states
	//
	// Subset construction is exponential in the worst case: (a|b)*a(a|b)^n
	// needs 2^(n+1) states. The limit keeps such inputs from exhausting
	// memory.
	MaxStates uint32
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}
