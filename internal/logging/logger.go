// Package logging provides the leveled console logger used by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Logger writes leveled lines to out, errors to errOut.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	color  bool
	debug  bool
}

// New creates a logger writing to out and errOut. Color is used only when
// out is a terminal and NO_COLOR is unset.
func New(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:    out,
		errOut: errOut,
		color:  isTerminal(out) && os.Getenv("NO_COLOR") == "",
		debug:  debug,
	}
}

// NewStd creates a logger on stdout/stderr
func NewStd(debug bool) *Logger {
	return New(os.Stdout, os.Stderr, debug)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDebug toggles Debug output
func (l *Logger) SetDebug(debug bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = debug
}

// DebugEnabled reports whether Debug lines are printed
func (l *Logger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *Logger) line(w io.Writer, level string, style lipgloss.Style, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tag := level
	if l.color {
		tag = style.Render(level)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", tag, text)
}

// Info logs a plain progress line
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(l.out, "[INFO]", infoStyle, fmt.Sprintf(format, args...))
}

// Success logs a completed step
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(l.out, "[DONE]", successStyle, fmt.Sprintf(format, args...))
}

// Warn logs a non-fatal condition
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(l.out, "[WARN]", warnStyle, fmt.Sprintf(format, args...))
}

// Error logs to errOut
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(l.errOut, "[ERROR]", errorStyle, fmt.Sprintf(format, args...))
}

// Debug logs only when debug output is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	l.line(l.out, "[DEBUG]", debugStyle, fmt.Sprintf(format, args...))
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, io.Discard, false)
}
