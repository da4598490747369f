// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	sampleIndent = 4  // spaces to indent sample entries
	nameWidth    = 35 // Base width for sample name
	modeWidth    = 10 // Width for materialize mode
	statusWidth  = 15 // Width for status text
)

// 🎵 SampleOperation represents a materialized sample for logging
type SampleOperation struct {
	Source    string // Source path
	Target    string // Target path
	Mode      string // hardlink / symlink / copy
	Status    string // Operation status
	IsPlanned bool   // Dry run, nothing written
	IsFailed  bool   // Writing failed
	Error     error  // Cause of the failure
}

// 🥁 KitOperation represents a kit being written
type KitOperation struct {
	Name    string // Kit name
	Samples int    // Number of samples in the kit
	DryRun  bool   // Whether writes are suppressed
}

// 🎯 Logger prints user facing lines to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	current *KitOperation
	samples []SampleOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatSampleOperation formats a sample operation for display
func (l *Logger) formatSampleOperation(op SampleOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsPlanned:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	var modeColor color.Attribute
	switch op.Mode {
	case "copy":
		modeColor = color.FgBlue
	case "symlink":
		modeColor = color.FgYellow
	default:
		modeColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", sampleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(op.Target)),
		color.New(modeColor).Sprint(fmt.Sprintf("%-*s", modeWidth, op.Mode)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogSampleOperation logs a sample operation
func (l *Logger) LogSampleOperation(ctx context.Context, op SampleOperation) {
	l.samples = append(l.samples, op)

	fmt.Fprintln(l.console, l.formatSampleOperation(op))

	event := l.zlog.Info()
	if op.IsFailed {
		event = l.zlog.Error().Err(op.Error)
	}
	event.
		Str("source", op.Source).
		Str("target", op.Target).
		Str("mode", op.Mode).
		Str("status", op.Status).
		Bool("planned", op.IsPlanned).
		Msg("sample operation")
}

// 📝 StartKitOperation starts a new kit operation
func (l *Logger) StartKitOperation(ctx context.Context, op KitOperation) {
	l.current = &op
	l.samples = nil

	suffix := ""
	if op.DryRun {
		suffix = " " + color.New(color.Faint).Sprint("(dry run)")
	}

	fmt.Fprintf(l.console, "%s %s %s %s%s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d samples", op.Samples),
		suffix)

	l.zlog.Info().
		Str("kit", op.Name).
		Int("samples", op.Samples).
		Bool("dry_run", op.DryRun).
		Msg("starting kit")
}

// 📝 EndKitOperation ends the current kit operation
func (l *Logger) EndKitOperation(ctx context.Context) {
	if l.current == nil {
		return
	}

	failed := 0
	for _, op := range l.samples {
		if op.IsFailed {
			failed++
		}
	}

	l.zlog.Info().
		Str("kit", l.current.Name).
		Int("samples", len(l.samples)).
		Int("failed", failed).
		Msg("kit complete")

	l.current = nil
	l.samples = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	name := color.New(color.Bold, color.FgCyan).Sprint("kitcat")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
