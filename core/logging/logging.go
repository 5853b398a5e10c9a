// Package logging provides the structured loggers shared by every core
// package. It replaces the bracketed "[info]"/"[error]" tags the protocol
// runtime historically printed through the standard library logger with
// logrus fields, so log lines stay greppable by component, step, and role
// without losing the terseness of the original tags.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base = logrus.New()
	once sync.Once
)

// Configure sets the base logger's level and formatter. Safe to call once at
// query-driver startup; core packages never call it themselves.
func Configure(level logrus.Level) {
	once.Do(func() {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	base.SetLevel(level)
}

// Component returns a named sub-logger, e.g. logging.Component("gateway").
func Component(name string) *logrus.Entry {
	return base.WithField("component", name)
}
