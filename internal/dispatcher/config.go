package dispatcher

import "github.com/dshills/inkwell/internal/dispatcher/execctx"

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables per-action counters and timings.
	EnableMetrics bool

	// RecoverFromPanic turns a handler panic into a declined result.
	RecoverFromPanic bool

	// Features are the editing behaviors enabled at construction.
	Features execctx.Features
}

// DefaultConfig returns a configuration with panic recovery on and every
// editing feature enabled.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		Features:         execctx.DefaultFeatures(),
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithFeatures returns a copy of the config with the given features.
func (c Config) WithFeatures(f execctx.Features) Config {
	c.Features = f
	return c
}
