package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"dsclean/internal/config"
	"dsclean/internal/exitcodes"
	"dsclean/internal/fsops"
	"dsclean/internal/logging"
	"dsclean/internal/metrics"
	"dsclean/internal/report"
	"dsclean/internal/sweeper"
)

// newTrasher is replaced in tests so nothing reaches the real trash
var newTrasher = func() fsops.Trasher { return fsops.OSTrasher{} }

type flags struct {
	dryRun      bool
	verbose     bool
	noRecursive bool
	skipHidden  bool
	strict      bool
	maxDepth    int
	workers     int
	rate        float64
	configPath  string
	logFile     string
	logLevel    string
	textfile    string
}

// exitError carries a process exit status out of RunE. err may be nil when
// the status alone is the message, as for strict-mode partial failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// execute runs the CLI with args and returns the process exit status
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcodes.Success
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	// Flag and argument parsing errors
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitcodes.InvalidConfig
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "dsclean [path]",
		Short: "Move macOS .DS_Store files to the trash",
		Long: `dsclean walks a directory tree and moves every regular file named exactly
.DS_Store to the platform trash, where it can still be restored.

Symbolic links are never followed or removed. Use --dry-run to preview what
would be moved.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd, f, root, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "Preview mode: list files without moving them")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Show every file found and moved")
	fl.BoolVar(&f.noRecursive, "no-recursive", false, "Only check the top-level directory")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "Maximum recursion depth (0 = unlimited)")
	fl.BoolVar(&f.skipHidden, "skip-hidden", false, "Skip hidden directories")
	fl.IntVarP(&f.workers, "workers", "j", 1, "Number of files moved concurrently")
	fl.Float64Var(&f.rate, "rate", 0, "Maximum files moved per second (0 = unlimited)")
	fl.StringVar(&f.configPath, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	fl.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this file")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.StringVar(&f.textfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	fl.BoolVar(&f.strict, "strict", false, "Exit with status 3 when any file could not be moved")

	return cmd
}

func run(cmd *cobra.Command, f *flags, root string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadOptional(f.configPath)
	if err != nil {
		return &exitError{code: exitcodes.InvalidConfig, err: fmt.Errorf("failed to load config: %w", err)}
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return &exitError{code: exitcodes.InvalidConfig, err: err}
	}

	opts := cfg.Options(root)
	opts.DryRun = f.dryRun
	opts.Verbose = f.verbose

	fsys := afero.NewOsFs()
	if err := opts.Validate(fsys); err != nil {
		return &exitError{code: exitcodes.InvalidConfig, err: err}
	}

	zl, closer := logging.NewWithWriter(cfg.Logging, stderr)
	defer closer.Close()
	logger := logging.KV(zl)

	m := metrics.New()
	printer := report.New(stdout, stderr, opts)
	printer.Header(opts)

	s := sweeper.New(opts,
		sweeper.WithFs(fsys),
		sweeper.WithTrasher(newTrasher()),
		sweeper.WithMetrics(m),
		sweeper.WithLogger(logger),
		sweeper.WithEventHandler(printer.Event),
	)
	result, err := s.Run(cmd.Context())
	if result == nil {
		if errors.Is(err, sweeper.ErrInvalidOptions) {
			return &exitError{code: exitcodes.InvalidConfig, err: err}
		}
		return &exitError{code: exitcodes.RuntimeError, err: err}
	}

	printer.Summary(result.Stats)
	if result.Interrupted {
		printer.Interrupted()
	}

	if path := cfg.Metrics.Textfile; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			logger.Error("Failed to write metrics textfile", "path", path, "error", err)
		}
	}

	if code := result.ExitCode(cfg.FailOnError); code != exitcodes.Success {
		return &exitError{code: code}
	}
	return nil
}

// applyFlags overrides cfg with every flag given on the command line
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("max-depth") {
		cfg.Scan.MaxDepth = f.maxDepth
	}
	if changed("no-recursive") {
		cfg.Scan.NoRecursive = f.noRecursive
	}
	if changed("skip-hidden") {
		cfg.Scan.SkipHidden = f.skipHidden
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("rate") {
		cfg.MaxPerSecond = f.rate
	}
	if changed("strict") {
		cfg.FailOnError = f.strict
	}
	if changed("log-file") {
		cfg.Logging.File = f.logFile
	}
	if changed("metrics-textfile") {
		cfg.Metrics.Textfile = f.textfile
	}
	if changed("log-level") {
		level := strings.ToLower(f.logLevel)
		if _, err := zerolog.ParseLevel(level); err != nil {
			return fmt.Errorf("unknown log level %q", f.logLevel)
		}
		cfg.Logging.Level = level
	}

	// Verbose output also surfaces informational log lines
	if f.verbose && cfg.Logging.Level != "debug" && cfg.Logging.Level != "trace" {
		cfg.Logging.Level = "info"
	}
	return nil
}
