package redfa

import (
	"errors"

	"github.com/coregx/redfa/dfa/subset"
)

// Config controls compilation limits.
type Config struct {
	// MaxDFAStates bounds subset construction. Patterns that need more DFA
	// states fail with ResourceLimitExceeded.
	//
	// Default: 10,000
	MaxDFAStates uint32
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates: subset.DefaultConfig().MaxStates,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxDFAStates == 0 {
		return errors.New("invalid config: MaxDFAStates must be > 0")
	}
	return nil
}

func (c Config) subsetConfig() subset.Config {
	return subset.DefaultConfig().WithMaxStates(c.MaxDFAStates)
}
