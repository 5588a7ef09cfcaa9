package cleanup

import (
	"context"
	"errors"
	"fmt"

	"dsclean/internal/fsops"
	"dsclean/internal/limiter"
	"dsclean/internal/safety"
)

// Logger interface for structured logging in cleanup
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

// Metrics interface for disposal metrics
type Metrics interface {
	IncMoved()
	IncFailed()
	IncSkipped()
	IncPreviewed()
}

type nopMetrics struct{}

func (nopMetrics) IncMoved()     {}
func (nopMetrics) IncFailed()    {}
func (nopMetrics) IncSkipped()   {}
func (nopMetrics) IncPreviewed() {}

// Cleaner moves validated candidates to the trash. It is safe for
// concurrent use when its trasher is.
type Cleaner struct {
	logger    Logger
	metrics   Metrics
	validator *safety.Validator
	trasher   fsops.Trasher
	limiter   *limiter.DisposalLimiter
	dryRun    bool
}

// NewCleaner creates a new Cleaner instance using the OS trash
func NewCleaner(validator *safety.Validator, dryRun bool, logger Logger) *Cleaner {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Cleaner{
		logger:    logger,
		metrics:   nopMetrics{},
		validator: validator,
		trasher:   fsops.OSTrasher{},
		dryRun:    dryRun,
	}
}

// SetTrasher replaces the trash facility (tests use fsops.FakeTrasher)
func (c *Cleaner) SetTrasher(t fsops.Trasher) {
	c.trasher = t
}

// SetValidator replaces the safety validator
func (c *Cleaner) SetValidator(v *safety.Validator) {
	c.validator = v
}

// SetLimiter throttles trash operations
func (c *Cleaner) SetLimiter(l *limiter.DisposalLimiter) {
	c.limiter = l
}

// SetMetrics attaches a metrics sink
func (c *Cleaner) SetMetrics(m Metrics) {
	if m == nil {
		m = nopMetrics{}
	}
	c.metrics = m
}

// DryRun reports whether the cleaner only previews
func (c *Cleaner) DryRun() bool {
	return c.dryRun
}

// Dispose re-validates path against the current filesystem and moves it to
// the trash. It never returns an error: every failure is folded into the
// Outcome so one bad file cannot stop the run.
func (c *Cleaner) Dispose(ctx context.Context, path string) Outcome {
	// Re-check identity; the file may have changed since it was discovered
	if err := c.validator.ValidateTarget(path); err != nil {
		return c.rejected(path, err)
	}

	if c.dryRun {
		c.logger.Debug("[DRY RUN] Would move to trash", "path", path)
		c.metrics.IncPreviewed()
		return Outcome{Path: path, Status: StatusWouldMove}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// Nothing was attempted, so this is not a failure
		c.logger.Info("Run interrupted before file was moved", "path", path, "error", err)
		c.metrics.IncSkipped()
		return Outcome{Path: path, Status: StatusSkippedCancelled, Err: err}
	}

	if err := c.trasher.Trash(path); err != nil {
		// Don't count a file that vanished under us as a failure
		if errors.Is(c.validator.ValidateTarget(path), safety.ErrNotFound) {
			c.logger.Info("File vanished before it could be trashed", "path", path, "error", err)
			c.metrics.IncSkipped()
			return Outcome{Path: path, Status: StatusSkippedNotFound, Err: safety.ErrNotFound}
		}
		return c.failed(path, fmt.Errorf("move to trash: %w", err))
	}

	c.logger.Debug("Moved to trash", "path", path)
	c.metrics.IncMoved()
	return Outcome{Path: path, Status: StatusMoved}
}

// rejected maps a validation error to an outcome
func (c *Cleaner) rejected(path string, err error) Outcome {
	switch {
	case errors.Is(err, safety.ErrNotFound):
		c.logger.Info("File already gone", "path", path)
		c.metrics.IncSkipped()
		return Outcome{Path: path, Status: StatusSkippedNotFound, Err: err}
	case errors.Is(err, safety.ErrNotTarget),
		errors.Is(err, safety.ErrNotRegular),
		errors.Is(err, safety.ErrOutsideRoot),
		errors.Is(err, safety.ErrTraversal),
		errors.Is(err, safety.ErrInvalidPath):
		c.logger.Info("Safety check rejected path", "path", path, "error", err)
		c.metrics.IncSkipped()
		return Outcome{Path: path, Status: StatusSkippedNotAFile, Err: err}
	default:
		return c.failed(path, err)
	}
}

// failed records a disposal that was attempted and did not succeed.
// Logged at info; the report prints failures itself.
func (c *Cleaner) failed(path string, err error) Outcome {
	c.logger.Info("Failed to move to trash", "path", path, "error", err)
	c.metrics.IncFailed()
	return Outcome{Path: path, Status: StatusFailed, Err: err}
}
