package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one run, registered on their own
// registry so that repeated runs in one process never collide.
type Metrics struct {
	Registry *prometheus.Registry

	// FilesFoundTotal counts .DS_Store files matched during the walk
	FilesFoundTotal prometheus.Counter

	// FilesMovedTotal counts files successfully moved to the trash
	FilesMovedTotal prometheus.Counter

	// FilesFailedTotal counts disposals that were attempted and did not succeed
	FilesFailedTotal prometheus.Counter

	// FilesSkippedTotal counts matches that vanished or changed before disposal
	FilesSkippedTotal prometheus.Counter

	// FilesPreviewedTotal counts matches reported in dry-run mode
	FilesPreviewedTotal prometheus.Counter

	// WalkErrorsTotal counts directories that could not be read
	WalkErrorsTotal prometheus.Counter

	// WorkersActive tracks disposals currently in flight
	WorkersActive prometheus.Gauge

	// RunDuration tracks how long a run takes
	RunDuration prometheus.Histogram

	// LastRunTimestamp records the Unix timestamp of the last completed run
	LastRunTimestamp prometheus.Gauge

	// DryRun is 1 when the last run was a preview
	DryRun prometheus.Gauge
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		FilesFoundTotal: NewCounter(
			"dsclean_files_found_total",
			"Total number of .DS_Store files found.",
		),
		FilesMovedTotal: NewCounter(
			"dsclean_files_moved_total",
			"Total number of files moved to the trash.",
		),
		FilesFailedTotal: NewCounter(
			"dsclean_files_failed_total",
			"Total number of files that could not be moved to the trash.",
		),
		FilesSkippedTotal: NewCounter(
			"dsclean_files_skipped_total",
			"Total number of matches that vanished or changed before disposal.",
		),
		FilesPreviewedTotal: NewCounter(
			"dsclean_files_previewed_total",
			"Total number of matches reported in dry-run mode.",
		),
		WalkErrorsTotal: NewCounter(
			"dsclean_walk_errors_total",
			"Total number of directories that could not be read.",
		),
		WorkersActive: NewGauge(
			"dsclean_workers_active",
			"Number of disposals currently in flight.",
		),
		RunDuration: NewDurationHistogram(
			"dsclean_run_duration_seconds",
			"Duration of cleanup runs in seconds.",
		),
		LastRunTimestamp: NewGauge(
			"dsclean_last_run_timestamp_seconds",
			"Timestamp of the last completed run (Unix epoch seconds).",
		),
		DryRun: NewGauge(
			"dsclean_last_run_dry_run",
			"1 if the last run was a dry run, 0 otherwise.",
		),
	}

	m.Registry.MustRegister(
		m.FilesFoundTotal,
		m.FilesMovedTotal,
		m.FilesFailedTotal,
		m.FilesSkippedTotal,
		m.FilesPreviewedTotal,
		m.WalkErrorsTotal,
		m.WorkersActive,
		m.RunDuration,
		m.LastRunTimestamp,
		m.DryRun,
	)
	return m
}

// All helpers below are safe on a nil *Metrics.

func (m *Metrics) IncFound() {
	if m != nil {
		m.FilesFoundTotal.Inc()
	}
}

func (m *Metrics) IncMoved() {
	if m != nil {
		m.FilesMovedTotal.Inc()
	}
}

func (m *Metrics) IncFailed() {
	if m != nil {
		m.FilesFailedTotal.Inc()
	}
}

func (m *Metrics) IncSkipped() {
	if m != nil {
		m.FilesSkippedTotal.Inc()
	}
}

func (m *Metrics) IncPreviewed() {
	if m != nil {
		m.FilesPreviewedTotal.Inc()
	}
}

func (m *Metrics) IncWalkErrors() {
	if m != nil {
		m.WalkErrorsTotal.Inc()
	}
}

// WorkerStarted and WorkerDone bracket one in-flight disposal
func (m *Metrics) WorkerStarted() {
	if m != nil {
		m.WorkersActive.Inc()
	}
}

func (m *Metrics) WorkerDone() {
	if m != nil {
		m.WorkersActive.Dec()
	}
}

// RecordRun stores the duration and completion time of a run
func (m *Metrics) RecordRun(elapsed time.Duration, finished time.Time, dryRun bool) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(elapsed.Seconds())
	m.LastRunTimestamp.Set(float64(finished.Unix()))
	if dryRun {
		m.DryRun.Set(1)
	} else {
		m.DryRun.Set(0)
	}
}

// WriteTextfile writes all collectors in the text exposition format, for
// node_exporter's textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
