// Package config loads the site configuration from mdsite.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up at the site root.
const FileName = "mdsite.toml"

// Defaults used when a field is absent.
const (
	DefaultContentDir = "content"
	DefaultStaticDir  = "static"
	DefaultOutputDir  = "public"
	DefaultTemplate   = "template.html"
	DefaultBasePath   = "/"
	DefaultWorkers    = 4
)

// Config describes where a site's inputs live and how it is built.
// Relative paths are resolved against the site root.
type Config struct {
	// ContentDir holds the markdown sources.
	ContentDir string `toml:"content_dir"`

	// StaticDir is copied verbatim into OutputDir before pages are written.
	StaticDir string `toml:"static_dir"`

	// OutputDir receives the generated site.
	OutputDir string `toml:"output_dir"`

	// Template is the page template with {{ Title }} and {{ Content }}.
	Template string `toml:"template"`

	// BasePath is prefixed to root-relative href/src attributes.
	// Default: "/".
	BasePath string `toml:"base_path"`

	// Workers is the number of pages built concurrently.
	// nil/absent = default (4). Explicit 0 = one per CPU.
	Workers *int `toml:"workers"`

	// CleanOutput empties OutputDir before a build.
	// nil/absent = default (true).
	CleanOutput *bool `toml:"clean_output"`

	// VerifyOutput checks every generated page for well-formed nesting.
	VerifyOutput bool `toml:"verify_output"`

	root string
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	workers := DefaultWorkers
	clean := true
	return &Config{
		ContentDir:  DefaultContentDir,
		StaticDir:   DefaultStaticDir,
		OutputDir:   DefaultOutputDir,
		Template:    DefaultTemplate,
		BasePath:    DefaultBasePath,
		Workers:     &workers,
		CleanOutput: &clean,
	}
}

// Load reads FileName from root. A missing file yields the defaults.
func Load(root string) (*Config, error) {
	return LoadFromFile(filepath.Join(root, FileName))
}

// LoadFromFile reads a config file. The site root is the file's directory.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	cfg.root = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills string fields the file set to "".
func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
}

// Validate checks the config for values that cannot work.
func (c *Config) Validate() error {
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", *c.Workers)
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with \"/\", got %q", c.BasePath)
	}
	return nil
}

// Root returns the site root the relative paths are resolved against.
func (c *Config) Root() string {
	if c == nil || c.root == "" {
		return "."
	}
	return c.root
}

// SetRoot changes the site root.
func (c *Config) SetRoot(root string) {
	c.root = root
}

// Resolve returns p joined to the site root unless it is absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root(), p)
}

// GetWorkers returns the effective worker count, at least 1.
func (c *Config) GetWorkers() int {
	if c == nil || c.Workers == nil {
		return DefaultWorkers
	}
	if *c.Workers == 0 {
		return runtime.NumCPU()
	}
	return *c.Workers
}

// GetCleanOutput returns CleanOutput or the default (true) if unset.
func (c *Config) GetCleanOutput() bool {
	if c == nil || c.CleanOutput == nil {
		return true
	}
	return *c.CleanOutput
}

// GetBasePath returns BasePath with a trailing slash.
func (c *Config) GetBasePath() string {
	if c == nil || c.BasePath == "" {
		return DefaultBasePath
	}
	if !strings.HasSuffix(c.BasePath, "/") {
		return c.BasePath + "/"
	}
	return c.BasePath
}
