// Package logging provides the structured logging interface used
// throughout the server core, backed by go-kit's leveled logger, mirroring
// the teacher library's own internal log/go-kit adapter.
package logging

import (
	gklog "github.com/go-kit/kit/log"
	gklevel "github.com/go-kit/kit/log/level"
)

// Logger is the narrow structured-logging interface every component in the
// server core depends on. It never wraps a *specific* backend directly so
// tests can substitute a no-op implementation.
type Logger interface {
	Debug(event string, keyvals ...interface{})
	Info(event string, keyvals ...interface{})
	Warn(event string, keyvals ...interface{})
	Error(event string, keyvals ...interface{})
	With(keyvals ...interface{}) Logger
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return NewGoKit(gklog.NewNopLogger())
}

// NewGoKit wraps a go-kit logger so it satisfies Logger.
func NewGoKit(l gklog.Logger) Logger {
	return &goKitLogger{logger: l}
}

type goKitLogger struct {
	logger gklog.Logger
}

func (g *goKitLogger) log(leveled gklog.Logger, event string, keyvals ...interface{}) {
	kv := make([]interface{}, 0, len(keyvals)+2)
	kv = append(kv, "event", event)
	kv = append(kv, keyvals...)
	_ = leveled.Log(kv...)
}

func (g *goKitLogger) Debug(event string, keyvals ...interface{}) {
	g.log(gklevel.Debug(g.logger), event, keyvals...)
}

func (g *goKitLogger) Info(event string, keyvals ...interface{}) {
	g.log(gklevel.Info(g.logger), event, keyvals...)
}

func (g *goKitLogger) Warn(event string, keyvals ...interface{}) {
	g.log(gklevel.Warn(g.logger), event, keyvals...)
}

func (g *goKitLogger) Error(event string, keyvals ...interface{}) {
	g.log(gklevel.Error(g.logger), event, keyvals...)
}

func (g *goKitLogger) With(keyvals ...interface{}) Logger {
	return NewGoKit(gklog.With(g.logger, keyvals...))
}
