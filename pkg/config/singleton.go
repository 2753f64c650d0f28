package config

import (
	"fmt"
	"sync"
)

var (
	// current is the published configuration.
	current *Config
	mu      sync.RWMutex
)

// Initialize loads the configuration at path with environment overrides and
// publishes it. Calling it again replaces the published configuration.
func Initialize(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}
	SetConfig(cfg)
	return cfg, nil
}

// GetConfig returns the published configuration, or nil before the first
// successful Initialize.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig publishes cfg.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// ReloadConfig re-reads path. The published configuration is replaced only
// if the new one loads and validates.
func ReloadConfig(path string) (*Config, error) {
	if GetConfig() == nil {
		return nil, fmt.Errorf("failed to reload configuration: not initialized")
	}

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}
	SetConfig(cfg)
	return cfg, nil
}
