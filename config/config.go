// Package config loads formatter and checker settings.
//
// Precedence, highest first: command-line flags, LDN_* environment
// variables, the .ldnfmt.yaml file, defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dhamidi/ldn/format"
	"github.com/dhamidi/ldn/ldn"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// FileName is the config file searched for upward from the working directory.
const FileName = ".ldnfmt.yaml"

const envPrefix = "LDN_"

// maxUpwardSearchLevels limits how far up the directory tree to search.
const maxUpwardSearchLevels = 10

type Config struct {
	Indent     int      `koanf:"indent"`
	MaxDepth   int      `koanf:"max_depth"`
	Extensions []string `koanf:"extensions"`
	Jobs       int      `koanf:"jobs"`
	Color      string   `koanf:"color"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"indent":     format.DefaultIndent,
		"max_depth":  ldn.DefaultMaxDepth,
		"extensions": []string{".ldn"},
		"jobs":       runtime.NumCPU(),
		"color":      "auto",
	}
}

// Load reads the configuration. cfgFile may be empty, in which case
// FileName is searched for upward from the working directory. flags may be
// nil; only flags that were explicitly set override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = findUpward(cwd)
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// LDN_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// HasExtension reports whether path ends in one of the configured
// extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseOptions returns the parser options implied by the configuration.
func (c *Config) ParseOptions() []ldn.Option {
	return []ldn.Option{ldn.WithMaxDepth(c.MaxDepth)}
}

// Formatter returns a formatter configured with the indentation setting.
func (c *Config) Formatter() *format.Formatter {
	return format.NewFormatter(format.WithIndent(c.Indent))
}

func findUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
