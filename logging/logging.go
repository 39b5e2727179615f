/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package logging gives the core a concrete logger to call. Per spec
// section 1 the tracing sink is an external collaborator; this package
// only wires that collaborator to something real, the way the teacher
// repo bridges logrus into hclog.Logger for components that expect the
// latter's interface (dragonboat, cobra command trees, ...).
package logging

import (
	"io"
	stdlog "log"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/sirupsen/logrus"
)

// Logger is the narrow logging surface package isis and package cli
// depend on. Kept small on purpose — callers that need more reach into
// the underlying logrus.Logger via Logrus().
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// WithField returns a derived Logger carrying an extra structured
	// field, e.g. the owning node's name.
	WithField(key string, value interface{}) Logger

	// Logrus exposes the backing *logrus.Entry for callers that need
	// the full API.
	Logrus() *logrus.Entry

	// HCLog adapts this Logger to the hashicorp/go-hclog.Logger
	// interface expected by components ported from the teacher's
	// dragonboat-derived packages.
	HCLog() hclog.Logger
}

type logger struct {
	entry *logrus.Entry
}

// New returns a Logger writing to w at the given level ("debug", "info",
// "warn", "error"). An empty level defaults to "info".
func New(w io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "info"
	}

	if lv, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lv)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return &logger{entry: logrus.NewEntry(l)}
}

// Default returns a Logger writing to stderr at info level.
func Default() Logger {
	return New(os.Stderr, "info")
}

func (l *logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) Logrus() *logrus.Entry {
	return l.entry
}

func (l *logger) HCLog() hclog.Logger {
	return &hclogAdapter{l: l.entry}
}

// hclogAdapter implements enough of hclog.Logger to satisfy components
// that expect it, backed by the same logrus.Entry.
type hclogAdapter struct {
	l *logrus.Entry
}

func (a *hclogAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Log(hclogToLogrus(level), msg)
}

func (a *hclogAdapter) Trace(msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Trace(msg)
}

func (a *hclogAdapter) Debug(msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Debug(msg)
}

func (a *hclogAdapter) Info(msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Info(msg)
}

func (a *hclogAdapter) Warn(msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Warn(msg)
}

func (a *hclogAdapter) Error(msg string, args ...interface{}) {
	a.l.WithFields(argsToFields(args)).Error(msg)
}

func (a *hclogAdapter) IsTrace() bool { return a.l.Logger.IsLevelEnabled(logrus.TraceLevel) }
func (a *hclogAdapter) IsDebug() bool { return a.l.Logger.IsLevelEnabled(logrus.DebugLevel) }
func (a *hclogAdapter) IsInfo() bool  { return a.l.Logger.IsLevelEnabled(logrus.InfoLevel) }
func (a *hclogAdapter) IsWarn() bool  { return a.l.Logger.IsLevelEnabled(logrus.WarnLevel) }
func (a *hclogAdapter) IsError() bool { return a.l.Logger.IsLevelEnabled(logrus.ErrorLevel) }

func (a *hclogAdapter) ImpliedArgs() []interface{} { return nil }

func (a *hclogAdapter) With(args ...interface{}) hclog.Logger {
	return &hclogAdapter{l: a.l.WithFields(argsToFields(args))}
}

func (a *hclogAdapter) Name() string { return "" }

func (a *hclogAdapter) Named(name string) hclog.Logger {
	return &hclogAdapter{l: a.l.WithField("component", name)}
}

func (a *hclogAdapter) ResetNamed(name string) hclog.Logger {
	return a.Named(name)
}

func (a *hclogAdapter) SetLevel(level hclog.Level) {
	a.l.Logger.SetLevel(hclogToLogrus(level))
}

func (a *hclogAdapter) GetLevel() hclog.Level {
	return logrusToHCLog(a.l.Logger.GetLevel())
}

func (a *hclogAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *stdlog.Logger {
	return stdlog.New(a.l.Logger.Out, "", 0)
}

func (a *hclogAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return a.l.Logger.Out
}

func argsToFields(args []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		f[key] = args[i+1]
	}

	return f
}

func hclogToLogrus(level hclog.Level) logrus.Level {
	switch level {
	case hclog.Trace:
		return logrus.TraceLevel
	case hclog.Debug:
		return logrus.DebugLevel
	case hclog.Info:
		return logrus.InfoLevel
	case hclog.Warn:
		return logrus.WarnLevel
	case hclog.Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func logrusToHCLog(level logrus.Level) hclog.Level {
	switch level {
	case logrus.TraceLevel:
		return hclog.Trace
	case logrus.DebugLevel:
		return hclog.Debug
	case logrus.InfoLevel:
		return hclog.Info
	case logrus.WarnLevel:
		return hclog.Warn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return hclog.Error
	default:
		return hclog.Info
	}
}
