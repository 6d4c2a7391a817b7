package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no -config flag is given. Its absence is not an
// error.
const DefaultPath = ".codexcheck.yaml"

type Config struct {
	Validate ValidateConfig `yaml:"validate"`
	Dedup    DedupConfig    `yaml:"dedup"`
}

type ValidateConfig struct {
	Data        string   `yaml:"data"`
	Schema      string   `yaml:"schema"`
	Format      string   `yaml:"format"`
	StrictKeys  bool     `yaml:"strict_keys"`
	UniqueKeys  []string `yaml:"unique_keys"`
	MetricsFile string   `yaml:"metrics_file"`
	Lang        string   `yaml:"lang"`
}

type DedupConfig struct {
	Root       string   `yaml:"root"`
	Extensions []string `yaml:"extensions"`
	Skip       []string `yaml:"skip"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Resolve loads path when it was passed explicitly. Otherwise it loads
// DefaultPath if present and falls back to Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.Validate.Data == "" {
		c.Validate.Data = "dist/codex.min.json"
	}
	if c.Validate.Schema == "" {
		c.Validate.Schema = "schema/codex-node.schema.json"
	}
	if c.Validate.Format == "" {
		c.Validate.Format = "text"
	}
	if c.Validate.Lang == "" {
		c.Validate.Lang = "en"
	}
	if c.Dedup.Root == "" {
		c.Dedup.Root = "."
	}
	if c.Dedup.Extensions == nil {
		c.Dedup.Extensions = []string{".js", ".mjs", ".html", ".json", ".md", ".py", ".txt"}
	}
	if c.Dedup.Skip == nil {
		c.Dedup.Skip = []string{".git", "node_modules", "__pycache__"}
	}
}

func (c *Config) validate() error {
	switch c.Validate.Format {
	case "text", "json":
	default:
		return fmt.Errorf("validate.format must be text or json, got %q", c.Validate.Format)
	}
	switch c.Validate.Lang {
	case "en", "ja":
	default:
		return fmt.Errorf("validate.lang must be en or ja, got %q", c.Validate.Lang)
	}
	for _, k := range c.Validate.UniqueKeys {
		if k == "" || strings.Contains(k, "/") {
			return fmt.Errorf("validate.unique_keys: invalid field name %q", k)
		}
	}
	if len(c.Dedup.Extensions) == 0 {
		return fmt.Errorf("dedup.extensions must not be empty")
	}
	return nil
}
