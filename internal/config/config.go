// Package config holds the front-end settings: a JSON file, environment
// overrides and command-line flags layered in that order.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ingyamilmolinar/drift/core/gesture"
	"github.com/ingyamilmolinar/drift/internal/bridge"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// SyntheticConfig shapes the stand-in host used when no plugin is present.
type SyntheticConfig struct {
	Configured     bool              `json:"configured"`
	Activated      bool              `json:"activated"`
	ValidCodes     []string          `json:"validCodes,omitempty"`
	Results        map[string]string `json:"results,omitempty"`
	MaxActivations int               `json:"maxActivations,omitempty"`
}

// Options converts to the bridge's synthetic host options.
func (s SyntheticConfig) Options() bridge.SyntheticOptions {
	return bridge.SyntheticOptions{
		Configured:     s.Configured,
		Activated:      s.Activated,
		ValidCodes:     append([]string(nil), s.ValidCodes...),
		Results:        s.Results,
		MaxActivations: s.MaxActivations,
	}
}

// Config is the main configuration structure
type Config struct {
	LogLevel          string          `json:"logLevel"`
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	TPS               int             `json:"tps"`
	DragDivisor       float64         `json:"dragDivisor"`
	BPM               float64         `json:"bpm"`
	Seed              int64           `json:"seed"`
	DevSkipActivation bool            `json:"devSkipActivation"`
	Synthetic         SyntheticConfig `json:"synthetic"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		LogLevel:    "INFO",
		Width:       760,
		Height:      520,
		TPS:         60,
		DragDivisor: gesture.DragDivisor,
		BPM:         120,
		Seed:        1,
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drift"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads path over the defaults. A missing file yields the defaults;
// an empty path means the default location.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv applies DRIFT_* overrides read through lookup, normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DRIFT_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("DRIFT_BPM"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: DRIFT_BPM %q", ErrInvalid, v)
		}
		c.BPM = f
	}
	if v, ok := lookup("DRIFT_DEV_SKIP"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: DRIFT_DEV_SKIP %q", ErrInvalid, v)
		}
		c.DevSkipActivation = b
	}
	if v, ok := lookup("DRIFT_LICENSE_CODES"); ok {
		c.Synthetic.Configured = true
		c.Synthetic.ValidCodes = nil
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				c.Synthetic.ValidCodes = append(c.Synthetic.ValidCodes, code)
			}
		}
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Width < 200 || c.Height < 150:
		return fmt.Errorf("%w: window %dx%d is too small", ErrInvalid, c.Width, c.Height)
	case c.TPS < 1 || c.TPS > 240:
		return fmt.Errorf("%w: tps %d outside 1..240", ErrInvalid, c.TPS)
	case !(c.DragDivisor > 0):
		return fmt.Errorf("%w: dragDivisor must be positive", ErrInvalid)
	case !(c.BPM >= 20 && c.BPM <= 999):
		return fmt.Errorf("%w: bpm %v outside 20..999", ErrInvalid, c.BPM)
	case c.Synthetic.MaxActivations < 0:
		return fmt.Errorf("%w: maxActivations is negative", ErrInvalid)
	}
	return nil
}
