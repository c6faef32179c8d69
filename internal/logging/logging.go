// Package logging configures the logrus logger shared by every component.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base = logrus.New()
	once sync.Once
)

// Configure sets the level and output format. Unknown levels fall back to info.
func Configure(level, format string) {
	// explicit configuration wins over the env defaults applied lazily by New
	once.Do(func() {})
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
	base.SetOutput(os.Stderr)
	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// New returns an entry tagged with the component name.
func New(component string) *logrus.Entry {
	once.Do(func() {
		Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})
	return base.WithField("component", component)
}

// Logger exposes the underlying logger, mostly so tests can silence it.
func Logger() *logrus.Logger {
	return base
}
