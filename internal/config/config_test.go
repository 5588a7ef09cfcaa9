package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestDecodeAndDefault(t *testing.T) {
	input := `
scan:
  max_depth: 3
  skip_hidden: true
workers: 4
max_per_second: 50
fail_on_error: true
logging:
  level: DEBUG
  file: /tmp/dsclean.log
metrics:
  textfile: /var/lib/node_exporter/dsclean.prom
`
	cfg, err := decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := cfg.validateAndDefault(); err != nil {
		t.Fatalf("validateAndDefault: %v", err)
	}

	if cfg.Scan.MaxDepth != 3 || !cfg.Scan.SkipHidden || cfg.Scan.NoRecursive {
		t.Errorf("scan = %+v", cfg.Scan)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Workers)
	}
	if cfg.MaxPerSecond != 50 {
		t.Errorf("max_per_second = %v, want 50", cfg.MaxPerSecond)
	}
	if !cfg.FailOnError {
		t.Error("fail_on_error should be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want lowercased debug", cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB != 10 || cfg.Logging.MaxBackups != 3 || cfg.Logging.MaxAgeDays != 30 {
		t.Errorf("rotation defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/dsclean.prom" {
		t.Errorf("textfile = %q", cfg.Metrics.Textfile)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Workers != 1 {
		t.Errorf("workers = %d, want 1", cfg.Workers)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.FailOnError {
		t.Error("fail_on_error must default to false")
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	cfg, err := decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if err := cfg.validateAndDefault(); err != nil {
		t.Fatalf("validateAndDefault: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers = %d, want 1", cfg.Workers)
	}
}

func TestValidateAndDefaultErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative depth", Config{Scan: ScanCfg{MaxDepth: -1}}, errNegativeDepth},
		{"negative workers", Config{Workers: -2}, errInvalidWorkers},
		{"negative rate", Config{MaxPerSecond: -1}, errNegativeRate},
		{"bad level", Config{Logging: LoggingCfg{Level: "loud"}}, errInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.validateAndDefault(); !errors.Is(err, tt.want) {
				t.Errorf("validateAndDefault() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := decode(strings.NewReader("pattern: '*.tmp'\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Workers)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOptionalFallsBackToDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOptional("")
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers = %d, want default 1", cfg.Workers)
	}
}

func TestOptionsValidate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/scan/sub", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fsys, "/scan/file.txt", nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"valid directory", Options{Root: "/scan"}, nil},
		{"valid unclean path", Options{Root: "/scan/sub/../sub/"}, nil},
		{"missing root", Options{Root: "/nope"}, ErrRootNotFound},
		{"root is a file", Options{Root: "/scan/file.txt"}, ErrRootNotDir},
		{"negative depth", Options{Root: "/scan", MaxDepth: -1}, errNegativeDepth},
		{"negative workers", Options{Root: "/scan", Workers: -1}, errInvalidWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.Validate(fsys)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				if !filepath.IsAbs(opts.Root) || opts.Root != filepath.Clean(opts.Root) {
					t.Errorf("root not normalized: %q", opts.Root)
				}
				if opts.Workers != 1 {
					t.Errorf("workers = %d, want 1", opts.Workers)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWalkDepth(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"unlimited", Options{}, -1},
		{"bounded", Options{MaxDepth: 2}, 2},
		{"no recursive", Options{NoRecursive: true}, 0},
		{"no recursive wins over depth", Options{NoRecursive: true, MaxDepth: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.WalkDepth(); got != tt.want {
				t.Errorf("WalkDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := Default()
	cfg.Scan.SkipHidden = true
	cfg.Workers = 3

	opts := cfg.Options("/scan")
	if opts.Root != "/scan" || !opts.SkipHidden || opts.Workers != 3 {
		t.Errorf("Options() = %+v", opts)
	}
}
