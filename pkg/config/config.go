// Package config holds the runtime configuration of a run and
// merges it from defaults, an optional YAML file, .env files and
// COCCYX_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.coccyx/pkg/env"
	"digital.vasic.coccyx/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COCCYX_"

const (
	// DefaultPollInterval is the queue stabilization period.
	DefaultPollInterval = time.Second
	// DefaultPreRunDelay separates "queue built" from the run.
	DefaultPreRunDelay = 2 * time.Second
)

// Config holds runtime configuration for a run.
type Config struct {
	// ShortCircuit stops the run after the first failing
	// assertion.
	ShortCircuit bool `yaml:"short_circuit"`

	// PollInterval is the period of the queue stabilizer.
	PollInterval time.Duration `yaml:"poll_interval"`

	// PreRunDelay is waited between the queue being built and
	// the first evaluation.
	PreRunDelay time.Duration `yaml:"pre_run_delay"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
	Verbose   bool   `yaml:"verbose"`

	// Output selects the terminal presenter: "console", "text"
	// or "json".
	Output string `yaml:"output"`

	// ResultsDir receives summaries, history and HTML reports.
	// Empty disables writing results.
	ResultsDir string `yaml:"results_dir"`
	HTML       bool   `yaml:"html"`

	// MetricsFile, when set, receives a Prometheus textfile
	// snapshot after the run.
	MetricsFile string `yaml:"metrics_file"`

	// MonitorAddr, when set, serves the live dashboard.
	MonitorAddr string `yaml:"monitor_addr"`

	// Redact lists secret values masked in log output.
	Redact []string `yaml:"redact"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ShortCircuit: false,
		PollInterval: DefaultPollInterval,
		PreRunDelay:  DefaultPreRunDelay,
		LogLevel:     "info",
		LogFormat:    "console",
		Output:       "console",
	}
}

// Load merges the YAML file at path over the defaults. An empty
// path skips the file. Unknown keys are ignored.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadEnvFiles reads .env files into loader, skipping files
// that do not exist.
func LoadEnvFiles(loader env.Loader, paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := loader.Load(p); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides fields from COCCYX_* variables known to
// loader. Unrecognized variables are ignored; malformed values
// are an error.
func (c *Config) ApplyEnv(loader env.Loader) error {
	vars := loader.WithPrefix(EnvPrefix)

	for key, raw := range vars {
		name := strings.TrimPrefix(key, EnvPrefix)
		if err := c.set(name, raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	c.normalize()
	return nil
}

func (c *Config) set(name, raw string) error {
	var err error
	switch name {
	case "SHORT_CIRCUIT":
		c.ShortCircuit, err = strconv.ParseBool(raw)
	case "POLL_INTERVAL":
		c.PollInterval, err = time.ParseDuration(raw)
	case "PRE_RUN_DELAY":
		c.PreRunDelay, err = time.ParseDuration(raw)
	case "LOG_LEVEL":
		c.LogLevel = raw
	case "LOG_FORMAT":
		c.LogFormat = raw
	case "LOG_FILE":
		c.LogFile = raw
	case "VERBOSE":
		c.Verbose, err = strconv.ParseBool(raw)
	case "OUTPUT":
		c.Output = raw
	case "RESULTS_DIR":
		c.ResultsDir = raw
	case "HTML":
		c.HTML, err = strconv.ParseBool(raw)
	case "METRICS_FILE":
		c.MetricsFile = raw
	case "MONITOR_ADDR":
		c.MonitorAddr = raw
	case "REDACT":
		c.Redact = splitList(raw)
	}
	return err
}

// normalize replaces values the run cannot use with defaults.
func (c *Config) normalize() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.PreRunDelay < 0 {
		c.PreRunDelay = 0
	}
	if c.Verbose && c.LogLevel != "debug" {
		c.LogLevel = "debug"
	}
}

// LoggingOptions derives logger options from the config.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Format:     c.LogFormat,
		Level:      c.LogLevel,
		OutputPath: c.LogFile,
		Secrets:    c.Redact,
	}
}

// String renders the config as YAML with secrets masked.
func (c *Config) String() string {
	masked := *c
	masked.Redact = env.RedactAll(c.Redact)
	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Sprintf("%+v", masked)
	}
	return string(data)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
