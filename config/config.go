// Package config loads server configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DispatcherGo   = "go"
	DispatcherPool = "pool"
)

type Config struct {
	ServiceName string `yaml:"service_name"`

	Port      uint16 `yaml:"port"`
	ForceIPv4 bool   `yaml:"force_ipv4"`

	// Dispatcher selects how connection tasks run: "go" launches one
	// goroutine per task, "pool" uses a bounded worker pool of PoolSize.
	Dispatcher string `yaml:"dispatcher"`
	PoolSize   int    `yaml:"pool_size"`
}

func Default() Config {
	return Config{
		ServiceName: "swifter",
		Port:        8080,
		Dispatcher:  DispatcherGo,
		PoolSize:    128,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.Dispatcher {
	case DispatcherGo, DispatcherPool:
	default:
		return fmt.Errorf("config: unknown dispatcher %q", cfg.Dispatcher)
	}
	if cfg.Dispatcher == DispatcherPool && cfg.PoolSize < 1 {
		return fmt.Errorf("config: pool_size must be at least 1, got %d", cfg.PoolSize)
	}
	return nil
}
