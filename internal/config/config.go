// Package config loads the design rules and search limits of a run.
//
// Priority, highest first: environment, config file, preset, defaults.
// Command-line flags are applied on top by the apps.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"lamp-core/lamp"
	"lamp-core/thermo"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LAMP_"

var validate = validator.New()

// Config is the file format of a design run.
type Config struct {
	Preset      string                `yaml:"preset,omitempty" json:"preset,omitempty"`
	Constraints lamp.ConstraintConfig `yaml:"constraints" json:"constraints"`
	Search      lamp.SearchBounds     `yaml:"search" json:"search"`
}

// Default returns the built-in rules and limits.
func Default() Config {
	return Config{Constraints: lamp.DefaultConfig(), Search: lamp.DefaultSearchBounds()}
}

// Load builds the configuration of a run. path may be empty. A non-empty
// preset wins over LAMP_PRESET, which wins over the file's preset field.
func Load(path, preset string) (Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		data = b
	}

	name := preset
	if name == "" {
		name = os.Getenv(EnvPrefix + "PRESET")
	}
	if name == "" && data != nil {
		var head struct {
			Preset string `yaml:"preset" json:"preset"`
		}
		if err := decode(data, &head); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
		name = head.Preset
	}
	rules, err := lamp.Preset(name)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Constraints: rules, Search: lamp.DefaultSearchBounds()}

	if data != nil {
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	cfg.Preset = name

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode tries YAML first, then JSON.
func decode(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		if jsonErr := json.Unmarshal(data, v); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

// Validate runs the struct tag checks, then the cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Constraints.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Write dumps c as YAML.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

type envVar struct {
	name  string
	apply func(c *Config, v string) error
}

func floatVar(dst func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

func intVar(dst func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func concVar(dst func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := thermo.ParseConc(v)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

var envVars = []envVar{
	{"NA", concVar(func(c *Config) *float64 { return &c.Constraints.Conditions.NaM })},
	{"MG", concVar(func(c *Config) *float64 { return &c.Constraints.Conditions.MgM })},
	{"PRIMER_CONC", concVar(func(c *Config) *float64 { return &c.Constraints.Conditions.PrimerM })},
	{"TM_MIN", floatVar(func(c *Config) *float64 { return &c.Constraints.Tm.Min })},
	{"TM_OPT", floatVar(func(c *Config) *float64 { return &c.Constraints.Tm.Opt })},
	{"TM_MAX", floatVar(func(c *Config) *float64 { return &c.Constraints.Tm.Max })},
	{"GC_MIN", floatVar(func(c *Config) *float64 { return &c.Constraints.GC.Min })},
	{"GC_MAX", floatVar(func(c *Config) *float64 { return &c.Constraints.GC.Max })},
	{"AMPLICON_MIN", intVar(func(c *Config) *int { return &c.Constraints.Spacing.Amplicon.Min })},
	{"AMPLICON_MAX", intVar(func(c *Config) *int { return &c.Constraints.Spacing.Amplicon.Max })},
	{"HAIRPIN_DG", floatVar(func(c *Config) *float64 { return &c.Constraints.Thresholds.HairpinDG })},
	{"DIMER_DG", floatVar(func(c *Config) *float64 { return &c.Constraints.Thresholds.DimerDG })},
	{"CANDIDATES_PER_ROLE", intVar(func(c *Config) *int { return &c.Search.CandidatesPerRole })},
	{"COMBINATION_DEPTH", intVar(func(c *Config) *int { return &c.Search.CombinationDepth })},
	{"REGION_LENGTH", intVar(func(c *Config) *int { return &c.Search.RegionLength })},
	{"PARALLEL", func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Search.Parallel = b
		return nil
	}},
}

// EnvNames lists the supported environment overrides.
func EnvNames() []string {
	out := []string{EnvPrefix + "PRESET"}
	for _, e := range envVars {
		out = append(out, EnvPrefix+e.name)
	}
	return out
}

func applyEnv(c *Config, getenv func(string) string) error {
	for _, e := range envVars {
		v := getenv(EnvPrefix + e.name)
		if v == "" {
			continue
		}
		if err := e.apply(c, v); err != nil {
			return fmt.Errorf("%s%s=%q: %w", EnvPrefix, e.name, v, err)
		}
	}
	return nil
}
