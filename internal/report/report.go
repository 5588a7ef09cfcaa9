package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"dsclean/internal/cleanup"
	"dsclean/internal/config"
	"dsclean/internal/stats"
	"dsclean/internal/sweeper"
)

const ruleWidth = 50

type styles struct {
	label   lipgloss.Style
	path    lipgloss.Style
	preview lipgloss.Style
	found   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		label:   r.NewStyle().Bold(true),
		path:    r.NewStyle().Foreground(lipgloss.Color("11")),
		preview: r.NewStyle().Foreground(lipgloss.Color("11")),
		found:   r.NewStyle().Foreground(lipgloss.Color("12")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")),
		title:   r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Printer renders a run for a terminal. Colors are chosen per writer, so
// piping the output yields plain text.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	dryRun  bool
	verbose bool

	o styles // styles bound to out
	e styles // styles bound to errOut

	mu        sync.Mutex
	lastFound string // path of the most recent [Found] or [Preview] line
}

// New creates a Printer for a run configured by opts
func New(out, errOut io.Writer, opts config.Options) *Printer {
	return &Printer{
		out:     out,
		errOut:  errOut,
		dryRun:  opts.DryRun,
		verbose: opts.Verbose,
		o:       newStyles(lipgloss.NewRenderer(out)),
		e:       newStyles(lipgloss.NewRenderer(errOut)),
	}
}

// Header prints the scan path, the mode and any recursion limit
func (p *Printer) Header(opts config.Options) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s %s\n", p.o.title.Render("Scan path:"), p.o.path.Render(opts.Root))
	if opts.DryRun {
		fmt.Fprintln(p.out, p.o.warn.Render("Mode: Preview mode (files will not be removed)"))
	} else {
		fmt.Fprintln(p.out, p.o.ok.Bold(true).Render("Mode: Execution mode (files will be moved to trash)"))
	}

	switch {
	case opts.NoRecursive:
		fmt.Fprintln(p.out, p.o.label.Render("Recursion: Disabled"))
	case opts.MaxDepth > 0:
		fmt.Fprintf(p.out, "%s %d\n", p.o.label.Render("Max depth:"), opts.MaxDepth)
	}
	fmt.Fprintln(p.out)
}

// Event prints the per-file lines. It can be passed directly to
// sweeper.WithEventHandler.
func (p *Printer) Event(ev sweeper.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case sweeper.EventFound:
		switch {
		case p.dryRun:
			fmt.Fprintf(p.out, "%s %s\n", p.o.preview.Render("[Preview]"), ev.Path)
			p.lastFound = ev.Path
		case p.verbose:
			fmt.Fprintf(p.out, "%s %s\n", p.o.found.Render("[Found]"), ev.Path)
			p.lastFound = ev.Path
		}
	case sweeper.EventDisposed:
		p.outcome(ev.Outcome)
	}
}

func (p *Printer) outcome(o cleanup.Outcome) {
	// With concurrent workers other files' lines can come in between, so
	// name the file unless its own line was the last one printed
	suffix := ""
	if o.Path != p.lastFound {
		suffix = ": " + o.Path
	}
	p.lastFound = ""

	switch o.Status {
	case cleanup.StatusMoved:
		if p.verbose {
			fmt.Fprintf(p.out, "  %s %s%s\n", p.o.ok.Bold(true).Render("✓"), p.o.ok.Render("Moved to trash"), suffix)
		}
	case cleanup.StatusSkippedNotFound, cleanup.StatusSkippedNotAFile, cleanup.StatusSkippedCancelled:
		if p.verbose {
			fmt.Fprintf(p.out, "  %s %s%s\n", p.o.muted.Render("-"), p.o.muted.Render(o.ToHumanReadable()), suffix)
		}
	case cleanup.StatusFailed:
		cause := "unknown error"
		if o.Err != nil {
			cause = o.Err.Error()
		}
		fmt.Fprintf(p.errOut, "  %s Failed to move file %s: %s\n",
			p.e.fail.Bold(true).Render("✗"), o.Path, p.e.fail.Render(cause))
	}
}

// Summary prints the statistics block and, after a preview with matches,
// a hint on how to execute the cleanup
func (p *Printer) Summary(s stats.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rule := p.o.muted.Render(strings.Repeat("=", ruleWidth))

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, p.o.title.Render("Cleanup Statistics:"))
	fmt.Fprintf(p.out, "  %s %s\n", p.o.label.Render("Found .DS_Store files:"), p.o.path.Render(fmt.Sprint(s.Found)))

	if !p.dryRun {
		fmt.Fprintf(p.out, "  %s %s\n", p.o.label.Render("Successfully moved to trash:"), p.o.ok.Render(fmt.Sprint(s.Moved)))
		if s.Skipped > 0 {
			fmt.Fprintf(p.out, "  %s %s\n", p.o.label.Render("Skipped:"), p.o.muted.Render(fmt.Sprint(s.Skipped)))
		}
		if s.Failed > 0 {
			fmt.Fprintf(p.out, "  %s %s\n", p.o.label.Render("Failed:"), p.o.fail.Render(fmt.Sprint(s.Failed)))
		}
	}
	fmt.Fprintln(p.out, rule)

	if p.dryRun && s.Found > 0 {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.o.preview.Render("Tip: Remove --dry-run flag to actually execute cleanup"))
	}
}

// Interrupted notes that the summary only covers part of the tree
func (p *Printer) Interrupted() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.errOut, p.e.warn.Render("Interrupted: statistics cover the files processed so far"))
}
