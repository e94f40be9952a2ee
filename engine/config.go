package engine

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the engine's configuration, sourced from the QV4_MM_*
// environment variables (QV4_MM_AGGRESSIVE_GC, QV4_MM_STATS,
// QV4_MM_MAXBLOCK_SHIFT, QV4_MM_MAX_CHUNK_SIZE) and loaded once via
// spf13/viper for structured configuration.
//
// check() validates exactly once, guarded by a "checked" bit, and a
// Config is safe to reuse across multiple New calls once checked.
type Config struct {
	// AggressiveGC forces a collection ahead of every allocation.
	AggressiveGC bool

	// Stats enables the GC stats dump on every collection.
	Stats bool

	// MaxChunkShift bounds how many times a size class's chunk request
	// may double before the allocator reuses the ceiling size.
	MaxChunkShift int

	// MaxChunkSize is read from QV4_MM_MAX_CHUNK_SIZE and rejected by
	// check() if negative. The allocator does not consult it: chunk sizes
	// are bounded by MaxChunkShift alone.
	MaxChunkSize int64

	// GrowthThreshold is how many bytes of net allocation are allowed
	// between collections when AggressiveGC is false.
	GrowthThreshold int64

	// Logger receives the engine's diagnostic output. Defaults to a
	// stderr logger at LogInfo (LogDebug when Stats is set) if left nil
	// by the time New is called.
	Logger Logger

	checked bool
}

// DefaultGrowthThreshold is used when a loaded Config leaves
// GrowthThreshold unset.
const DefaultGrowthThreshold = 4 << 20

// LoadConfig reads engine configuration from the process environment
// using viper, honoring the QV4_MM_* variable names. Values absent from
// the environment keep Go's zero value (false/0), except GrowthThreshold,
// which check() fills in with DefaultGrowthThreshold.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QV4_MM")
	v.AutomaticEnv()
	v.BindEnv("AGGRESSIVE_GC")
	v.BindEnv("STATS")
	v.BindEnv("MAXBLOCK_SHIFT")
	v.BindEnv("MAX_CHUNK_SIZE")

	cfg := &Config{
		AggressiveGC:  v.GetBool("AGGRESSIVE_GC"),
		Stats:         v.GetBool("STATS"),
		MaxChunkShift: v.GetInt("MAXBLOCK_SHIFT"),
		MaxChunkSize:  v.GetInt64("MAX_CHUNK_SIZE"),
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// check validates cfg and fills in defaults exactly once.
func (c *Config) check() error {
	if c.checked {
		return nil
	}
	if c.MaxChunkShift < 0 {
		return fmt.Errorf("engine: invalid MaxChunkShift %d", c.MaxChunkShift)
	}
	if c.MaxChunkSize < 0 {
		return fmt.Errorf("engine: invalid MaxChunkSize %d", c.MaxChunkSize)
	}
	if c.GrowthThreshold == 0 {
		c.GrowthThreshold = DefaultGrowthThreshold
	}
	if c.Logger == nil {
		level := LogInfo
		if c.Stats {
			level = LogDebug
		}
		c.Logger = NewLogger(level, os.Stderr)
	}
	c.checked = true
	return nil
}
