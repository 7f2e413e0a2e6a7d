package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCS_DIR", "corpus")
	p := writeFile(t, dir, "docsense.yaml", `
store:
  path: ${DOCS_DIR}
  watch: true
http:
  addr: ":9000"
analysis:
  model: lexicon
  lexicon: lexicon.yaml
logging:
  level: debug
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "corpus"), cfg.Store.Path)
	assert.Equal(t, "fs", cfg.Store.Adapter, "unset keys keep their default")
	assert.True(t, cfg.Store.Watch)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, ModelLexicon, cfg.Analysis.Model)
	assert.Equal(t, filepath.Join(dir, "lexicon.yaml"), cfg.Analysis.Lexicon)
	assert.Equal(t, 10, cfg.Analysis.KeywordLimit)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "docsense.toml", `
[store]
path = "/srv/docs.db"
adapter = "sqlite"

[analysis]
keyword_limit = 5
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs.db", cfg.Store.Path)
	assert.Equal(t, "sqlite", cfg.Store.Adapter)
	assert.Equal(t, 5, cfg.Analysis.KeywordLimit)
	assert.Equal(t, ModelVader, cfg.Analysis.Model, "unset keys keep their default")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvAdapter, "memory")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:7000")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Adapter)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)

	t.Setenv(EnvLexicon, "/etc/docsense/lexicon.yaml")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ModelLexicon, cfg.Analysis.Model, "a lexicon file selects the lexicon model")
	t.Setenv(EnvLexicon, "")

	t.Setenv(EnvWatch, "sometimes")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvWatch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"Unknown Adapter", func(c *Config) { c.Store.Adapter = "s3" }, "store.adapter"},
		{"Missing Path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"Memory Needs No Path", func(c *Config) { c.Store.Adapter = "memory"; c.Store.Path = "" }, ""},
		{"Watch Needs FS", func(c *Config) { c.Store.Adapter = "sqlite"; c.Store.Watch = true }, "store.watch"},
		{"Missing Addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr"},
		{"Negative Limit", func(c *Config) { c.Analysis.KeywordLimit = -1 }, "keyword_limit"},
		{"Unknown Model", func(c *Config) { c.Analysis.Model = "bert" }, "analysis.model"},
		{"Lexicon File Needs Lexicon Model", func(c *Config) { c.Analysis.Lexicon = "lex.yaml" }, "analysis.lexicon"},
		{"Embedded Lexicon", func(c *Config) { c.Analysis.Model = "lexicon" }, ""},
		{"Bad Level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, err = Load(writeFile(t, dir, "docsense.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, dir, "broken.yaml", "store: ["))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Discover(dir))

	toml := writeFile(t, dir, "docsense.toml", "")
	assert.Equal(t, toml, Discover(dir))

	yml := writeFile(t, dir, "docsense.yaml", "")
	assert.Equal(t, yml, Discover(dir), "yaml wins over toml")
}
