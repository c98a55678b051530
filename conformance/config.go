package conformance

import "fmt"

// MaxOpLength bounds message and output lengths in generated scripts.
const MaxOpLength = 1 << 20

// Config drives script generation.
type Config struct {
	// Seed makes generation reproducible.
	Seed string

	Scripts      int // number of scripts
	OpsPerScript int // transcript operations per script, RNG segments excluded
	MaxLen       int // upper bound for data and output lengths

	// AllowEmpty permits zero-length messages and outputs. The StrobeGo and
	// gtank references panic on zero-length PRF, so leave it off when
	// cross-checking against them.
	AllowEmpty bool

	// IncludeRng interleaves build/witness/finalize/draw/wipe segments.
	IncludeRng bool
}

// DefaultConfig returns the configuration used by the vector generator.
func DefaultConfig() *Config {
	return &Config{
		Seed:         "merlin-go conformance",
		Scripts:      32,
		OpsPerScript: 24,
		MaxLen:       512,
		AllowEmpty:   false,
		IncludeRng:   true,
	}
}

func (c *Config) Validate() error {
	if c.Scripts <= 0 {
		return fmt.Errorf("scripts must be positive, got %d", c.Scripts)
	}
	if c.OpsPerScript <= 0 {
		return fmt.Errorf("ops per script must be positive, got %d", c.OpsPerScript)
	}
	if c.MaxLen <= 0 || c.MaxLen > MaxOpLength {
		return fmt.Errorf("max length must be in [1, %d], got %d", MaxOpLength, c.MaxLen)
	}
	return nil
}

func (c *Config) WithSeed(seed string) *Config {
	c.Seed = seed
	return c
}

func (c *Config) WithScripts(n int) *Config {
	c.Scripts = n
	return c
}

func (c *Config) WithOpsPerScript(n int) *Config {
	c.OpsPerScript = n
	return c
}

func (c *Config) WithMaxLen(n int) *Config {
	c.MaxLen = n
	return c
}

func (c *Config) WithAllowEmpty(allow bool) *Config {
	c.AllowEmpty = allow
	return c
}

func (c *Config) WithIncludeRng(include bool) *Config {
	c.IncludeRng = include
	return c
}

func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
