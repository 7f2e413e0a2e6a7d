// Package config loads the docsense binary configuration from a YAML or
// TOML file, with ${VAR} expansion and DOCSENSE_* environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/docsense/internal/platform"
)

// File names probed by Discover, in order.
var fileNames = []string{"docsense.yaml", "docsense.yml", "docsense.toml"}

// Environment variables that override file values.
const (
	EnvStorePath = "DOCSENSE_STORE_PATH"
	EnvAdapter   = "DOCSENSE_ADAPTER"
	EnvWatch     = "DOCSENSE_WATCH"
	EnvHTTPAddr  = "DOCSENSE_HTTP_ADDR"
	EnvLogLevel  = "DOCSENSE_LOG_LEVEL"
	EnvLexicon   = "DOCSENSE_LEXICON"
)

// Sentiment model names accepted by analysis.model.
const (
	ModelVader   = "vader"
	ModelLexicon = "lexicon"
)

// Config represents the complete docsense configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" toml:"store"`
	HTTP     HTTPConfig     `yaml:"http" toml:"http"`
	Analysis AnalysisConfig `yaml:"analysis" toml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// StoreConfig selects and locates the document store.
type StoreConfig struct {
	Path    string `yaml:"path" toml:"path"`
	Adapter string `yaml:"adapter" toml:"adapter"`
	// Watch reloads the index when another process rewrites it (fs only).
	Watch bool `yaml:"watch" toml:"watch"`
}

// HTTPConfig holds the HTTP transport address.
type HTTPConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// AnalysisConfig tunes the analyzers.
type AnalysisConfig struct {
	// Model selects the sentiment model: "vader" (default) or "lexicon".
	Model string `yaml:"model" toml:"model"`
	// Lexicon is an optional YAML sentiment lexicon replacing the embedded
	// one. It requires the lexicon model.
	Lexicon string `yaml:"lexicon" toml:"lexicon"`
	// KeywordLimit is the default --limit of the keywords command.
	KeywordLimit int `yaml:"keyword_limit" toml:"keyword_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path:    "documents",
			Adapter: platform.AdapterFS,
		},
		HTTP:     HTTPConfig{Addr: "localhost:8000"},
		Analysis: AnalysisConfig{Model: ModelVader, KeywordLimit: 10},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path over the defaults, then applies
// environment overrides and validates the result. An empty path skips the
// file. Relative store and lexicon paths are resolved against the file's
// directory.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, expandEnvVars(string(data)), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.resolvePaths(filepath.Dir(path))
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Discover returns the first config file found in dir, or "".
func Discover(dir string) string {
	for _, name := range fileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func decode(path, data string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal([]byte(data), cfg)
	case ".toml":
		_, err := toml.Decode(data, cfg)
		return err
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// expandEnvVars replaces ${VAR} with environment variable values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(re.FindStringSubmatch(match)[1])
	})
}

func (c *Config) resolvePaths(base string) {
	if c.Store.Adapter != platform.AdapterMemory && c.Store.Path != "" && !filepath.IsAbs(c.Store.Path) {
		c.Store.Path = filepath.Join(base, c.Store.Path)
	}
	if c.Analysis.Lexicon != "" && !filepath.IsAbs(c.Analysis.Lexicon) {
		c.Analysis.Lexicon = filepath.Join(base, c.Analysis.Lexicon)
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvStorePath); ok {
		c.Store.Path = v
	}
	if v, ok := os.LookupEnv(EnvAdapter); ok {
		c.Store.Adapter = v
	}
	if v, ok := os.LookupEnv(EnvWatch); ok {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatch, err)
		}
		c.Store.Watch = watch
	}
	if v, ok := os.LookupEnv(EnvHTTPAddr); ok {
		c.HTTP.Addr = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLexicon); ok {
		c.Analysis.Lexicon = v
		if v != "" {
			c.Analysis.Model = ModelLexicon
		}
	}
	return nil
}

// Validate checks that all configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Store.Adapter {
	case platform.AdapterFS, platform.AdapterSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s adapter", c.Store.Adapter)
		}
	case platform.AdapterMemory:
	default:
		return fmt.Errorf("store.adapter %q is not one of fs, memory, sqlite", c.Store.Adapter)
	}

	if c.Store.Watch && c.Store.Adapter != platform.AdapterFS {
		return fmt.Errorf("store.watch is only supported by the fs adapter")
	}

	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}

	switch c.Analysis.Model {
	case ModelVader:
		if c.Analysis.Lexicon != "" {
			return fmt.Errorf("analysis.lexicon requires analysis.model %q", ModelLexicon)
		}
	case ModelLexicon:
	default:
		return fmt.Errorf("analysis.model %q is not one of %s, %s", c.Analysis.Model, ModelVader, ModelLexicon)
	}

	if c.Analysis.KeywordLimit < 0 {
		return fmt.Errorf("analysis.keyword_limit must not be negative")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level %q: %w", c.Logging.Level, err)
	}
	return level, nil
}
