// SPDX-License-Identifier: MIT

package gaussian

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gaussnet/matrix"
)

// Config is the file form of the submodel options. Zero or absent fields keep
// the defaults.
//
//	seed: 42
//	ordering: mindegree        # mindegree | natural | reverse
//	symmetry_tolerance: 1e-10
//	pivot_tolerance: 0
//	warmup_draws: 2
type Config struct {
	Seed              uint64   `yaml:"seed"`
	Ordering          string   `yaml:"ordering"`
	SymmetryTolerance *float64 `yaml:"symmetry_tolerance"`
	PivotTolerance    *float64 `yaml:"pivot_tolerance"`
	WarmupDraws       int      `yaml:"warmup_draws"`
}

// ParseConfig decodes a YAML document. Unknown keys are rejected.
// An empty document yields the zero Config.
//
// Errors: ErrInvalidConfig (wrapping the decoder or validation failure).
func ParseConfig(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, gaussianErrorf(opLoadConfig, err)
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, gaussianErrorf(opLoadConfig, err)
	}

	return c, nil
}

// Validate checks every field without applying it.
func (c Config) Validate() error {
	if _, err := matrix.ParseOrdering(c.Ordering); err != nil {
		return fmt.Errorf("%w: ordering %q", ErrInvalidConfig, c.Ordering)
	}
	for name, p := range map[string]*float64{
		"symmetry_tolerance": c.SymmetryTolerance,
		"pivot_tolerance":    c.PivotTolerance,
	} {
		if p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0) {
			return fmt.Errorf("%w: %s must be finite, non-negative", ErrInvalidConfig, name)
		}
	}
	if c.WarmupDraws < 0 {
		return fmt.Errorf("%w: warmup_draws must be non-negative", ErrInvalidConfig)
	}

	return nil
}

// Options converts c into submodel options. c must be valid.
func (c Config) Options() []Option {
	ord, _ := matrix.ParseOrdering(c.Ordering)
	opts := []Option{
		WithSeed(c.Seed),
		WithOrdering(ord),
		WithWarmupDraws(c.WarmupDraws),
	}
	if c.SymmetryTolerance != nil {
		opts = append(opts, WithSymmetryTolerance(*c.SymmetryTolerance))
	}
	if c.PivotTolerance != nil {
		opts = append(opts, WithPivotTolerance(*c.PivotTolerance))
	}

	return opts
}
