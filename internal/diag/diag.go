// Package diag wraps logrus for the tool's internal diagnostics: verbose
// per-phase timing and resolver/visitor warnings grouped by owner file.
// User-facing CLI output (results, success/error banners) stays plain
// fmt + ANSI in internal/cli; this package is only for the stderr
// diagnostic stream (warnings always, debug detail with -V/--verbose).
package diag

import (
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a thin façade over a *logrus.Logger scoped to one run.
type Logger struct {
	log *logrus.Logger
}

// New creates a Logger writing to out at the given verbosity. Verbose
// enables debug-level fields (per-phase timings); otherwise only
// warnings and above are emitted.
func New(out io.Writer, verbose bool) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    verbose,
	})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &Logger{log: l}
}

// Phase logs a pipeline stage's duration at debug level. Callers pass
// extra contextual fields (e.g. file counts) alongside the timing.
func (l *Logger) Phase(name string, d time.Duration, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["duration"] = d
	l.log.WithFields(fields).Debugf("phase %s complete", name)
}

// ResolutionErrors logs every unresolved import, grouped and sorted by
// owner file so output is deterministic across runs.
func (l *Logger) ResolutionErrors(byOwner map[string][]string) {
	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		for _, msg := range byOwner[owner] {
			l.log.WithField("owner", owner).Warn(msg)
		}
	}
}

// VisitorDiagnostics logs every non-literal dynamic import()/require()
// warning the Visitor collected, grouped by owner file.
func (l *Logger) VisitorDiagnostics(byOwner map[string][]string) {
	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		for _, msg := range byOwner[owner] {
			l.log.WithField("owner", owner).Debug(msg)
		}
	}
}
