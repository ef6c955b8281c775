/*
 * dvrouted distance-vector routing daemon.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

// Package dvlog is the narrow logging façade the core depends on: a
// small interface with a silent default, exactly the shape the
// teacher's own log package uses, backed by logrus instead of left
// unimplemented.
package dvlog

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

// Logger is everything the core ever asks of a log sink.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})

	// DumpTable writes a full structural dump of v at debug level, if
	// and only if debug dumping was enabled at construction. It is
	// never on the hot path of a packet or timer tick.
	DumpTable(v interface{})
}

// Nil discards everything. It is the default when no Logger is
// supplied, matching the teacher's log.Nil{}/nul{} stub.
type Nil struct{}

func (Nil) Debug(string, ...interface{}) {}
func (Nil) Info(string, ...interface{})  {}
func (Nil) Warn(string, ...interface{})  {}
func (Nil) Error(string, ...interface{}) {}
func (Nil) DumpTable(interface{})        {}

type logrusLogger struct {
	l         *logrus.Logger
	debugDump bool
}

// New returns a Logger backed by logrus at the given level. When
// debugDump is true and the level permits debug output, DumpTable
// emits a full spew.Sdump of whatever it's given — intended for an
// operator troubleshooting routing anomalies, not routine operation.
func New(level logrus.Level, debugDump bool) Logger {
	l := logrus.New()
	l.SetLevel(level)
	return &logrusLogger{l: l, debugDump: debugDump}
}

func fields(kv []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}

func (g *logrusLogger) Debug(msg string, kv ...interface{}) {
	g.l.WithFields(fields(kv)).Debug(msg)
}

func (g *logrusLogger) Info(msg string, kv ...interface{}) {
	g.l.WithFields(fields(kv)).Info(msg)
}

func (g *logrusLogger) Warn(msg string, kv ...interface{}) {
	g.l.WithFields(fields(kv)).Warn(msg)
}

func (g *logrusLogger) Error(msg string, kv ...interface{}) {
	g.l.WithFields(fields(kv)).Error(msg)
}

func (g *logrusLogger) DumpTable(v interface{}) {
	if !g.debugDump {
		return
	}
	g.l.Debug(spew.Sdump(v))
}
