package truetime

import (
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Servers           []string `yaml:"servers,flow"`
	RootDelayMax      float64  `yaml:"root_delay_max_ms"`
	RootDispersionMax float64  `yaml:"root_dispersion_max_ms"`
	ResponseDelayMax  float64  `yaml:"response_delay_max_ms"`
	TimeoutMs         int      `yaml:"timeout_ms"`
	SyncIntervalSec   int      `yaml:"sync_interval_sec"`
	CacheFile         string   `yaml:"cache_file"`
	Crosscheck        bool     `yaml:"crosscheck"`
	Stats             *Stats   `yaml:"stats"`
}

type Stats struct {
	PromAddr string `yaml:"prom_addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Servers:           []string{"pool.ntp.org:123", "0.pool.ntp.org:123"},
		RootDelayMax:      100,
		RootDispersionMax: 100,
		ResponseDelayMax:  750,
		TimeoutMs:         30000,
		SyncIntervalSec:   3600,
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	p, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(p, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c *Config) syncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSec) * time.Second
}
