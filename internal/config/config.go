package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type ScanCfg struct {
	MaxDepth    int  `yaml:"max_depth" json:"max_depth"` // 0 = unlimited
	NoRecursive bool `yaml:"no_recursive" json:"no_recursive"`
	SkipHidden  bool `yaml:"skip_hidden" json:"skip_hidden"`
}

type LoggingCfg struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"` // empty = console only
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

type MetricsCfg struct {
	Textfile string `yaml:"textfile" json:"textfile"` // node_exporter textfile collector target
}

type Config struct {
	Scan         ScanCfg    `yaml:"scan" json:"scan"`
	Workers      int        `yaml:"workers" json:"workers"`               // concurrent disposals, 1 = sequential
	MaxPerSecond float64    `yaml:"max_per_second" json:"max_per_second"` // disposal rate limit, 0 = unlimited
	FailOnError  bool       `yaml:"fail_on_error" json:"fail_on_error"`   // non-zero exit when any disposal fails
	Logging      LoggingCfg `yaml:"logging" json:"logging"`
	Metrics      MetricsCfg `yaml:"metrics" json:"metrics"`
}

var (
	ErrRootNotFound = errors.New("path does not exist")
	ErrRootNotDir   = errors.New("path is not a directory")

	errNegativeDepth   = errors.New("max_depth cannot be negative")
	errInvalidWorkers  = errors.New("workers cannot be negative")
	errNegativeRate    = errors.New("max_per_second cannot be negative")
	errInvalidLogLevel = errors.New("unknown log level")
)

// Default returns the built-in configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	// Defaults cannot fail validation
	_ = cfg.validateAndDefault()
	return cfg
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional loads path when given. Otherwise it loads the file at
// DefaultPath if one exists and falls back to Default.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	def := DefaultPath()
	if def == "" {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	return Load(def)
}

// DefaultPath returns $XDG_CONFIG_HOME/dsclean/config.yaml, or the
// platform equivalent; empty when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dsclean", "config.yaml")
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.Scan.MaxDepth < 0 {
		return errNegativeDepth
	}

	if c.Workers < 0 {
		return errInvalidWorkers
	}
	if c.Workers == 0 {
		c.Workers = 1 // Default: sequential disposal
	}

	if c.MaxPerSecond < 0 {
		return errNegativeRate
	}

	// Set defaults for logging
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %s", errInvalidLogLevel, c.Logging.Level)
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 30
	}

	return nil
}

// Options is the fully resolved configuration of a single run.
type Options struct {
	Root         string
	MaxDepth     int // 0 = unlimited
	NoRecursive  bool
	SkipHidden   bool
	DryRun       bool
	Verbose      bool
	Workers      int
	MaxPerSecond float64
}

// Options resolves the file configuration against a root path.
func (c *Config) Options(root string) Options {
	return Options{
		Root:         root,
		MaxDepth:     c.Scan.MaxDepth,
		NoRecursive:  c.Scan.NoRecursive,
		SkipHidden:   c.Scan.SkipHidden,
		Workers:      c.Workers,
		MaxPerSecond: c.MaxPerSecond,
	}
}

// Validate normalizes Root to an absolute, cleaned path and checks it is an
// existing directory on fsys. Errors here abort the run before any traversal.
func (o *Options) Validate(fsys afero.Fs) error {
	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}
	if o.MaxDepth < 0 {
		return errNegativeDepth
	}
	if o.Workers < 0 {
		return errInvalidWorkers
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.MaxPerSecond < 0 {
		return errNegativeRate
	}

	abs, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("cannot access the specified path %s: %w", o.Root, err)
	}
	o.Root = filepath.Clean(abs)

	info, err := fsys.Stat(o.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, o.Root)
		}
		return fmt.Errorf("cannot access the specified path %s: %w", o.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDir, o.Root)
	}
	return nil
}

// WalkDepth converts the user-facing depth settings into a traversal bound:
// -1 for unlimited, otherwise the deepest directory level to report.
func (o Options) WalkDepth() int {
	if o.NoRecursive {
		return 0
	}
	if o.MaxDepth <= 0 {
		return -1
	}
	return o.MaxDepth
}
