// Package config loads the deployment description of a ticker: which GPIO
// backend to use and which lines the display is wired to.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Backends understood by the ticker.
const (
	BackendPeriph = "periph"
	BackendCdev   = "cdev"
	BackendSim    = "sim"
)

// Duration is a time.Duration written as a Go duration string ("1ms").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config represents the ticker configuration.
type Config struct {
	Backend  string   `json:"backend"`
	Chip     string   `json:"chip"`
	Segments []int    `json:"segments"` // BCM line numbers, wiring order
	Digits   []int    `json:"digits"`   // BCM line numbers, left to right
	Hold     Duration `json:"hold"`
	Scroll   Duration `json:"scroll"`
}

// DefaultConfig returns the reference wiring on a Raspberry Pi.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendPeriph,
		Chip:     "gpiochip0",
		Segments: []int{11, 4, 23, 8, 7, 10, 18, 25},
		Digits:   []int{22, 27, 17, 24},
		Hold:     Duration(time.Millisecond),
		Scroll:   Duration(500 * time.Millisecond),
	}
}

// LoadConfig reads the configuration at path. Fields missing from the file
// keep their default.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parts of the configuration the display driver cannot.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPeriph, BackendSim:
	case BackendCdev:
		if c.Chip == "" {
			return fmt.Errorf("backend %q needs a chip", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	seen := map[int]bool{}
	for _, n := range append(append([]int(nil), c.Segments...), c.Digits...) {
		if n < 0 {
			return fmt.Errorf("negative line %d", n)
		}
		if seen[n] {
			return fmt.Errorf("line %d assigned twice", n)
		}
		seen[n] = true
	}
	return nil
}
