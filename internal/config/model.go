package config

import "time"

// Config describes how the region view component is wired into a
// process: metric exposure and sampling cadence.
type Config struct {
	Namespace string        `yaml:"namespace"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	Address             string `yaml:"address"`
	PollIntervalSeconds int    `yaml:"pollIntervalSeconds"`
}

// PollInterval converts the configured cadence into a duration.
func (m MetricsConfig) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalSeconds) * time.Second
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = "regionview"
	}
	if c.Metrics.PollIntervalSeconds <= 0 {
		c.Metrics.PollIntervalSeconds = 10
	}
}
