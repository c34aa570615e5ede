// Package config loads the terminal client's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Chat     ChatConfig     `yaml:"chat"`
	Spots    SpotsConfig    `yaml:"spots"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ChatConfig struct {
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

type SpotsConfig struct {
	ProximityThreshold float64 `yaml:"proximity_threshold"`
}

type GeocoderConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type SessionConfig struct {
	File string `yaml:"file"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *ChatConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillMissing()
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.fillMissing()
	return cfg
}

func (c *Config) fillMissing() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.Chat.PollIntervalMS == 0 {
		c.Chat.PollIntervalMS = 2000
	}
	if c.Spots.ProximityThreshold == 0 {
		c.Spots.ProximityThreshold = 0.1
	}
	if c.Geocoder.Endpoint == "" {
		c.Geocoder.Endpoint = "https://nominatim.openstreetmap.org/search"
	}
	if c.Session.File == "" {
		c.Session.File = filepath.Join(configDir(), "session.json")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(configDir(), "spotdrop.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "spotdrop")
}
