package zoomaker

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the timing knobs for the simulation core. All durations
// are wall-clock; the engine converts them to tick counts internally.
type Config struct {
	// TickInterval is the fixed simulation step size.
	TickInterval time.Duration `yaml:"tick_interval"`

	// PollInterval is how often an idle agent asks the scheduler for work.
	PollInterval time.Duration `yaml:"poll_interval"`

	// WanderAfter is how long an agent stays idle without claiming a task
	// before it starts wandering.
	WanderAfter time.Duration `yaml:"wander_after"`

	// WalkTimeout is the stuck-detection window: an agent that has been
	// walking toward a target for longer than this fails the task.
	WalkTimeout time.Duration `yaml:"walk_timeout"`

	// UnreachableTTL is how long an agent remembers that a target location
	// proved unreachable, so it does not instantly re-claim the same task.
	UnreachableTTL time.Duration `yaml:"unreachable_ttl"`

	// PathWorkers is the number of goroutines computing walk routes.
	PathWorkers int `yaml:"path_workers"`

	// PathSearchLimit caps the number of cells a single route search may
	// expand before giving up with ErrNoRoute.
	PathSearchLimit int `yaml:"path_search_limit"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval:    200 * time.Millisecond,
		PollInterval:    1 * time.Second,
		WanderAfter:     5 * time.Second,
		WalkTimeout:     30 * time.Second,
		UnreachableTTL:  30 * time.Second,
		PathWorkers:     2,
		PathSearchLimit: 16384,
		ShutdownTimeout: 30 * time.Second,
	}
}

// LoadConfig reads a YAML config file and merges it over DefaultConfig.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults fills zero-valued fields from DefaultConfig. Explicit
// zeroes in the file are indistinguishable from absent keys; every knob
// has a meaningful non-zero default, so that is acceptable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.WanderAfter <= 0 {
		c.WanderAfter = def.WanderAfter
	}
	if c.WalkTimeout <= 0 {
		c.WalkTimeout = def.WalkTimeout
	}
	if c.UnreachableTTL <= 0 {
		c.UnreachableTTL = def.UnreachableTTL
	}
	if c.PathWorkers <= 0 {
		c.PathWorkers = def.PathWorkers
	}
	if c.PathSearchLimit <= 0 {
		c.PathSearchLimit = def.PathSearchLimit
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}
