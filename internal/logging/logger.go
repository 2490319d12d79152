// Package logging keeps a diagnostic log for the loanflow binary itself:
// startup, shutdown and errors that end the program. The journey of a user
// through the demos goes to the logbook instead.
package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kingrea/loanflow/internal/config"
)

// Logger appends timestamped lines to .loanflow/logs/loanflow.log so a
// failure is still inspectable after the alt-screen UI has been torn down.
type Logger struct {
	file *os.File
	now  func() time.Time
}

// New opens (or creates) the diagnostic log of cfg.
func New(cfg *config.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.DiagnosticLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f, now: time.Now}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.file, "[%s] %s\n", l.now().Format(time.RFC3339), line)
}

// Fail records err with a short context and returns it unchanged, so call
// sites can log and propagate in one expression.
func (l *Logger) Fail(context string, err error) error {
	if err == nil {
		return nil
	}
	l.Printf("%s: %v", context, err)
	return err
}
