package sweeper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"dsclean/internal/cleanup"
	"dsclean/internal/config"
	"dsclean/internal/disk"
	"dsclean/internal/fsops"
	"dsclean/internal/limiter"
	"dsclean/internal/logging"
	"dsclean/internal/metrics"
	"dsclean/internal/safety"
	"dsclean/internal/scan"
	"dsclean/internal/stats"
)

var (
	// ErrInvalidOptions wraps every error that aborts a run before traversal
	ErrInvalidOptions = errors.New("invalid options")
	// ErrStaleMount is returned when the root sits on an unresponsive mount
	ErrStaleMount = errors.New("stale mount")
)

// Logger is the union of what the scanner and the cleaner log through
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Sweeper runs one find-and-dispose pass over a directory tree
type Sweeper struct {
	opts     config.Options
	fs       afero.Fs
	trasher  fsops.Trasher
	counters stats.Recorder
	metrics  *metrics.Metrics
	logger   Logger
	handler  EventHandler
	stale    time.Duration

	mu    sync.Mutex // serializes handler calls
	state atomic.Int32
}

type Option func(*Sweeper)

// WithFs runs the sweep against fsys instead of the OS filesystem
func WithFs(fsys afero.Fs) Option {
	return func(s *Sweeper) { s.fs = fsys }
}

func WithTrasher(t fsops.Trasher) Option {
	return func(s *Sweeper) { s.trasher = t }
}

// WithCounters records statistics into r instead of fresh per-run counters
func WithCounters(r stats.Recorder) Option {
	return func(s *Sweeper) { s.counters = r }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sweeper) { s.metrics = m }
}

func WithLogger(l Logger) Option {
	return func(s *Sweeper) { s.logger = l }
}

// WithEventHandler delivers found and disposed events while the run progresses
func WithEventHandler(h EventHandler) Option {
	return func(s *Sweeper) { s.handler = h }
}

// WithStaleTimeout bounds the stale mount check; zero disables it
func WithStaleTimeout(d time.Duration) Option {
	return func(s *Sweeper) { s.stale = d }
}

// New creates a Sweeper for opts. Options are validated by Run.
func New(opts config.Options, options ...Option) *Sweeper {
	s := &Sweeper{
		opts:    opts,
		fs:      afero.NewOsFs(),
		trasher: fsops.OSTrasher{},
		logger:  logging.Nop(),
		stale:   disk.DefaultStaleTimeout,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// State reports the current lifecycle phase
func (s *Sweeper) State() State {
	return State(s.state.Load())
}

func (s *Sweeper) setState(st State) {
	s.state.Store(int32(st))
	s.logger.Debug("State changed", "state", st.String())
}

// Run validates the options, walks the tree and disposes of every target.
// Only errors that prevent the run from starting are returned on their own.
// When ctx is cancelled mid-run the partial result is returned together
// with ctx.Err().
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	s.setState(StateInitializing)

	select {
	case <-ctx.Done():
		s.setState(StateAborted)
		return nil, ctx.Err()
	default:
	}

	opts := s.opts
	if err := opts.Validate(s.fs); err != nil {
		s.setState(StateAborted)
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if s.stale > 0 && disk.IsStale(opts.Root, s.stale) {
		s.setState(StateAborted)
		return nil, fmt.Errorf("%w: %s", ErrStaleMount, opts.Root)
	}

	counters := s.counters
	if counters == nil {
		counters = stats.New()
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Root:    opts.Root,
		DryRun:  opts.DryRun,
		Started: time.Now(),
	}

	validator := safety.NewValidator(s.fs, opts.Root)
	cleaner := cleanup.NewCleaner(validator, opts.DryRun, s.logger)
	cleaner.SetTrasher(s.trasher)
	cleaner.SetMetrics(s.metrics)
	cleaner.SetLimiter(limiter.New(opts.MaxPerSecond))

	s.logger.Info("Starting cleanup run",
		"run_id", result.RunID,
		"root", opts.Root,
		"dry_run", opts.DryRun,
		"max_depth", opts.WalkDepth(),
		"skip_hidden", opts.SkipHidden,
		"workers", opts.Workers,
	)

	s.setState(StateScanning)
	result.WalkErrors, result.Interrupted = s.sweep(ctx, opts, cleaner, counters)

	s.setState(StateReporting)
	result.Duration = time.Since(result.Started)
	result.Stats = counters.Snapshot()
	s.metrics.RecordRun(result.Duration, time.Now(), opts.DryRun)

	s.logger.Info("Cleanup run complete",
		"run_id", result.RunID,
		"found", result.Stats.Found,
		"moved", result.Stats.Moved,
		"failed", result.Stats.Failed,
		"skipped", result.Stats.Skipped,
		"walk_errors", result.WalkErrors,
		"duration", result.Duration,
	)

	if result.Interrupted {
		s.setState(StateAborted)
		return result, ctx.Err()
	}
	s.setState(StateDone)
	return result, nil
}

// sweep drives the walk and the disposal pool. It returns once every
// dispatched disposal has finished.
func (s *Sweeper) sweep(ctx context.Context, opts config.Options, cleaner *cleanup.Cleaner, counters stats.Recorder) (walkErrors int64, interrupted bool) {
	var g errgroup.Group
	g.SetLimit(opts.Workers)

	walk := scan.NewScanner(s.fs, s.logger).Walk(opts.Root, scan.WalkOptions{
		MaxDepth:   opts.WalkDepth(),
		SkipHidden: opts.SkipHidden,
	})

	for entry, err := range walk {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		if err != nil {
			walkErrors++
			s.walkError(entry, err)
			continue
		}
		if !safety.IsTarget(entry.Name, entry.Mode) {
			continue
		}

		counters.AddFound()
		s.metrics.IncFound()
		s.emit(Event{Kind: EventFound, Path: entry.Path})

		path := entry.Path
		if opts.Workers <= 1 {
			s.dispose(ctx, cleaner, counters, path)
			continue
		}
		g.Go(func() error {
			s.dispose(ctx, cleaner, counters, path)
			return nil
		})
	}

	// Disposals never return errors; outcomes are recorded instead
	_ = g.Wait()
	if ctx.Err() != nil {
		interrupted = true
	}
	return walkErrors, interrupted
}

func (s *Sweeper) dispose(ctx context.Context, cleaner *cleanup.Cleaner, counters stats.Recorder, path string) {
	s.metrics.WorkerStarted()
	defer s.metrics.WorkerDone()

	outcome := cleaner.Dispose(ctx, path)
	record(counters, outcome)
	s.emit(Event{Kind: EventDisposed, Path: path, Outcome: outcome})
}

func (s *Sweeper) walkError(entry scan.Entry, err error) {
	s.metrics.IncWalkErrors()
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("Entry vanished during walk", "path", entry.Path, "error", err)
		return
	}
	s.logger.Warn("Skipping unreadable directory", "path", entry.Path, "error", err)
}

func (s *Sweeper) emit(ev Event) {
	if s.handler == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler(ev)
}

// record folds an outcome into the statistics
func record(r stats.Recorder, o cleanup.Outcome) {
	switch o.Status {
	case cleanup.StatusMoved:
		r.AddMoved()
	case cleanup.StatusWouldMove:
		r.AddPreviewed()
	case cleanup.StatusSkippedNotFound, cleanup.StatusSkippedNotAFile, cleanup.StatusSkippedCancelled:
		r.AddSkipped()
	case cleanup.StatusFailed:
		r.AddFailed()
	}
}
