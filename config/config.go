// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the startup settings of depthlog: the optional YAML
// file and the validation of the positional arguments.
//
// Every validation failure is a *depth.ConfigError and is reported before
// the hardware or the log file is touched.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/depthlog/ads1x15"
	"github.com/GermanBionicSystems/depthlog/depth"
)

// DefaultInterval is used when no interval argument is given.
const DefaultInterval = 10 * time.Second

// Config represents the file configuration.
type Config struct {
	ADC     ADCConfig     `yaml:"adc"`
	Retry   RetryConfig   `yaml:"retry"`
	Display DisplayConfig `yaml:"display"`
}

// ADCConfig locates the converter. The defaults match the wiring of the
// depth logger: first I²C bus, ADDR to ground, transducer on A0.
type ADCConfig struct {
	Bus     string `yaml:"bus"` // "" opens the first bus found
	Address uint16 `yaml:"address"`
	Channel int    `yaml:"channel"`
}

// RetryConfig is the policy for failed ADC reads.
type RetryConfig struct {
	Attempts int           `yaml:"attempts"` // Extra attempts after the first failure
	Backoff  time.Duration `yaml:"backoff"`
}

// DisplayConfig configures the terminal gauge.
type DisplayConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Width    int     `yaml:"width"`
	MaxDepth float64 `yaml:"max_depth"` // metres
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		ADC: ADCConfig{
			Bus:     "",
			Address: ads1x15.DefaultAddress,
			Channel: int(ads1x15.ChannelA0),
		},
		Retry: RetryConfig{
			Attempts: 3,
			Backoff:  100 * time.Millisecond,
		},
		Display: DisplayConfig{
			Width: 40,
		},
	}
}

// Load reads filename on top of the defaults. An empty filename returns the
// defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &depth.ConfigError{Field: "config", Value: filename, Reason: err.Error()}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &depth.ConfigError{Field: "config", Value: filename, Reason: err.Error()}
	}
	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDefaults fills the fields a file may leave at zero.
func (c *Config) ensureDefaults() {
	def := Default()
	if c.ADC.Address == 0 {
		c.ADC.Address = def.ADC.Address
	}
	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
}

// Validate checks the ranges of every field.
func (c *Config) Validate() error {
	if c.ADC.Address > 0x7f {
		return &depth.ConfigError{Field: "adc.address", Value: fmt.Sprintf("%#x", c.ADC.Address), Reason: "not a 7-bit I²C address"}
	}
	if c.ADC.Channel < int(ads1x15.ChannelA0) || c.ADC.Channel > int(ads1x15.ChannelA3) {
		return &depth.ConfigError{Field: "adc.channel", Value: strconv.Itoa(c.ADC.Channel), Reason: "must be 0 to 3"}
	}
	if c.Retry.Attempts < 0 {
		return &depth.ConfigError{Field: "retry.attempts", Value: strconv.Itoa(c.Retry.Attempts), Reason: "must not be negative"}
	}
	if c.Retry.Backoff < 0 {
		return &depth.ConfigError{Field: "retry.backoff", Value: c.Retry.Backoff.String(), Reason: "must not be negative"}
	}
	if c.Display.Width < 0 {
		return &depth.ConfigError{Field: "display.width", Value: strconv.Itoa(c.Display.Width), Reason: "must not be negative"}
	}
	if c.Display.MaxDepth < 0 {
		return &depth.ConfigError{Field: "display.max_depth", Value: strconv.FormatFloat(c.Display.MaxDepth, 'g', -1, 64), Reason: "must not be negative"}
	}
	return nil
}

// ParseInterval parses the interval argument, whole non-negative seconds.
// An empty string returns DefaultInterval.
func ParseInterval(s string) (time.Duration, error) {
	if s == "" {
		return DefaultInterval, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &depth.ConfigError{Field: "interval", Value: s, Reason: "must be a non-negative whole number of seconds"}
	}
	return time.Duration(n) * time.Second, nil
}

// CheckOutputDir verifies that dir exists and is a directory.
func CheckOutputDir(dir string) error {
	if dir == "" {
		return &depth.ConfigError{Field: "output directory", Value: dir, Reason: "is required"}
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return &depth.ConfigError{Field: "output directory", Value: dir, Reason: err.Error()}
	}
	if !fi.IsDir() {
		return &depth.ConfigError{Field: "output directory", Value: dir, Reason: "not a directory"}
	}
	return nil
}
