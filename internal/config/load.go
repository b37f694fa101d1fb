package config

import (
	"fmt"

	"github.com/dshills/inkwell/internal/config/loader"
)

// Options controls where Load reads from.
type Options struct {
	// Path is the config file; empty skips the file layer.
	Path string

	// EnvPrefix defaults to loader.DefaultEnvPrefix. Set SkipEnv to
	// ignore the environment.
	EnvPrefix string
	SkipEnv   bool

	// FS defaults to the OS file system.
	FS loader.FileSystem
}

// Load merges defaults, the config file and the environment, then
// validates the result. A missing file is not an error.
func Load(opts Options) (*Config, error) {
	merged, err := Default().ToMap()
	if err != nil {
		return nil, err
	}

	if opts.Path != "" {
		l, err := loader.ForPath(opts.FS, opts.Path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if !opts.SkipEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = loader.DefaultEnvPrefix
		}
		env, err := loader.NewEnvLoader(prefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", opts.Path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
