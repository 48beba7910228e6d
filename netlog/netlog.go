// Package netlog is the single place the routing stack touches a logging
// library. It wraps github.com/sirupsen/logrus behind a tiny
// boundary-logging surface: user configuration errors and expected
// negative outcomes (spec.md §7) are logged once, here, rather than at
// every call site that happens to notice one.
package netlog

import "github.com/sirupsen/logrus"

// Logger is the process-wide entry point. It is a package variable, not a
// singleton type with hidden state, because the core never reads it back —
// it is write-only from the core's point of view, read only by whatever
// output sink the caller configured.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)

	return l
}

// ConfigError logs a user configuration error (spec.md §7): the operation
// was a no-op, and this is the only record of why.
func ConfigError(op string, err error, fields logrus.Fields) {
	entry := Logger.WithFields(fields)
	entry.WithField("op", op).Warn(err)
}

// NegativeOutcome logs an expected negative outcome (no LFA found, no SR
// tunnel for this prefix) at Debug level — these are not failures, just
// results worth tracing when investigating a specific destination.
func NegativeOutcome(op string, fields logrus.Fields) {
	Logger.WithFields(fields).WithField("op", op).Debug("no result")
}

// Computed logs the summary of a completed SPF/route/protection run at
// Info level — topology size, not per-node detail, to stay usable against
// a full-scale topology.
func Computed(op string, fields logrus.Fields) {
	Logger.WithFields(fields).WithField("op", op).Info(op + " complete")
}
