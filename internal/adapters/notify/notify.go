package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"kanbanwatch/internal/adapters/tui/styles"
	"kanbanwatch/internal/ports"
)

// Terminal prints notices as styled, timestamped lines
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Ensure Terminal implements Notifier
var _ ports.Notifier = (*Terminal)(nil)

// NewTerminal creates a notifier writing to out
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, now: time.Now}
}

// Notify writes one line. Write errors are ignored.
func (t *Terminal) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stamp := styles.Timestamp.Render(t.now().Format("15:04:05"))
	fmt.Fprintf(t.out, "%s %s\n", stamp, styles.Notice.Render(message))
}

// Logger turns notices into info records
type Logger struct {
	logger *slog.Logger
}

// Ensure Logger implements Notifier
var _ ports.Notifier = (*Logger)(nil)

// NewLogger creates a notifier logging through logger
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Notify logs message at info level
func (l *Logger) Notify(message string) {
	l.logger.Info(message, "source", "notice")
}

// Multi fans a notice out to several notifiers
type Multi []ports.Notifier

// Notify forwards message to every notifier in order
func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}
