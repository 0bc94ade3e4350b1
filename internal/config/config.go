package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/reactor/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the default address of the live demo server.
	DefaultAddr = ":8080"

	// DefaultInterval is the default tick interval of the live demo.
	DefaultInterval = "500ms"

	// DefaultIterations is the default number of fuzz iterations.
	DefaultIterations = 10000

	// DefaultMaxLen is the default maximum list length generated by the fuzzer.
	DefaultMaxLen = 16

	// DefaultAlphabet is the default number of distinct keys used by the fuzzer.
	DefaultAlphabet = 6

	// DefaultBenchSize is the default list size of the benchmark.
	DefaultBenchSize = 1000

	// DefaultBenchRounds is the default number of benchmark rounds.
	DefaultBenchRounds = 100
)

// FileNames are the configuration file names looked up by Load, in order.
var FileNames = []string{"reactor.yaml", "reactor.yml", "reactor.json"}

// Config represents the complete reactor configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Runtime contains reactive runtime configuration.
	Runtime RuntimeConfig `json:"runtime,omitempty" yaml:"runtime,omitempty"`

	// Fuzz contains reconciler fuzzing configuration.
	Fuzz FuzzConfig `json:"fuzz,omitempty" yaml:"fuzz,omitempty"`

	// Bench contains benchmark configuration.
	Bench BenchConfig `json:"bench,omitempty" yaml:"bench,omitempty"`

	// Serve contains live demo server configuration.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`

	// Report contains report sink configuration.
	Report ReportConfig `json:"report,omitempty" yaml:"report,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json (default: text).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// RuntimeConfig contains reactive runtime settings.
type RuntimeConfig struct {
	// MaxPasses bounds consecutive passes of one observer. Zero uses the
	// runtime default; a negative value disables the check.
	MaxPasses int `json:"maxPasses,omitempty" yaml:"maxPasses,omitempty"`
}

// FuzzConfig contains reconciler fuzzing settings.
type FuzzConfig struct {
	// Iterations is the number of random transitions to check.
	Iterations int `json:"iterations,omitempty" yaml:"iterations,omitempty"`

	// Seed seeds the generator. Zero picks a seed from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// MaxLen is the maximum generated list length.
	MaxLen int `json:"maxLen,omitempty" yaml:"maxLen,omitempty"`

	// Alphabet is the number of distinct keys. Small alphabets produce
	// many duplicates.
	Alphabet int `json:"alphabet,omitempty" yaml:"alphabet,omitempty"`

	// Report is where the run report is written: a file path, "-" for
	// stdout, or s3://bucket/key.
	Report string `json:"report,omitempty" yaml:"report,omitempty"`
}

// BenchConfig contains benchmark settings.
type BenchConfig struct {
	// Size is the list length.
	Size int `json:"size,omitempty" yaml:"size,omitempty"`

	// Rounds is the number of reconciliations per scenario.
	Rounds int `json:"rounds,omitempty" yaml:"rounds,omitempty"`
}

// ServeConfig contains live demo server settings.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Interval is the demo tick interval (e.g. "500ms").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`

	// Items is the number of distinct items the demo shuffles.
	Items int `json:"items,omitempty" yaml:"items,omitempty"`
}

// ReportConfig contains report sink settings.
type ReportConfig struct {
	// S3 configures s3:// report destinations.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config contains S3 settings. Credentials come from the standard AWS
// environment variables.
type S3Config struct {
	// Region is the AWS region (default: us-east-1).
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory. It looks for the
// files in FileNames and returns the defaults if none exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. Files ending in
// .json are parsed as JSON, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No config file at " + path).
				WithSuggestion("Check the --config flag")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON or YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Fuzz
	if c.Fuzz.Iterations == 0 {
		c.Fuzz.Iterations = DefaultIterations
	}
	if c.Fuzz.MaxLen == 0 {
		c.Fuzz.MaxLen = DefaultMaxLen
	}
	if c.Fuzz.Alphabet == 0 {
		c.Fuzz.Alphabet = DefaultAlphabet
	}

	// Bench
	if c.Bench.Size == 0 {
		c.Bench.Size = DefaultBenchSize
	}
	if c.Bench.Rounds == 0 {
		c.Bench.Rounds = DefaultBenchRounds
	}

	// Serve
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.Interval == "" {
		c.Serve.Interval = DefaultInterval
	}
	if c.Serve.Items == 0 {
		c.Serve.Items = 8
	}

	// Report
	if c.Report.S3.Region == "" {
		c.Report.S3.Region = "us-east-1"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E101").
			WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Fuzz.Iterations < 0 || c.Fuzz.MaxLen < 0 || c.Fuzz.Alphabet < 0 {
		return errors.New("E101").
			WithDetail("fuzz.iterations, fuzz.maxLen and fuzz.alphabet must not be negative")
	}
	if c.Bench.Size < 0 || c.Bench.Rounds < 0 {
		return errors.New("E101").
			WithDetail("bench.size and bench.rounds must not be negative")
	}
	if c.Serve.Items < 0 {
		return errors.New("E101").
			WithDetail("serve.items must not be negative")
	}
	if _, err := c.ServeInterval(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E101").
			WithDetailf("log.level %q is not a level", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// ServeInterval returns the parsed demo tick interval.
func (c *Config) ServeInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Serve.Interval)
	if err != nil || d <= 0 {
		return 0, errors.New("E101").
			WithDetailf("serve.interval %q is not a positive duration", c.Serve.Interval)
	}
	return d, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
