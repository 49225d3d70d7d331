// Package config handles configuration loading for the server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"kuanb/gogeojson/geojson"
	"kuanb/gogeojson/routing"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Listen         string          `yaml:"listen"`
	PBF            string          `yaml:"pbf"`
	LogLevel       string          `yaml:"log_level"`
	ValidateSchema bool            `yaml:"validate_schema"`
	Codec          geojson.Options `yaml:"codec"`
	Matcher        routing.Params  `yaml:"matcher"`
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Listen:         ":8080",
		PBF:            "data/example.osm.pbf",
		LogLevel:       "info",
		ValidateSchema: true,
		Codec:          geojson.DefaultOptions(),
		Matcher:        routing.DefaultParams(),
	}
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Codec.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("codec.max_depth: must not be negative, got %d", c.Codec.MaxDepth))
	}
	if c.Matcher.SigmaZ < 0 || c.Matcher.Beta < 0 || c.Matcher.MaxCandidateDist < 0 {
		errs = append(errs, errors.New("matcher: parameters must not be negative"))
	}
	return errors.Join(errs...)
}
