package ymaze

import (
	"fmt"
	"io"
	"os"

	"github.com/teslashibe/go-ymaze/internal/log"
)

// ConsoleNotifier prints run messages to the terminal.
type ConsoleNotifier struct {
	Out io.Writer
	Err io.Writer
}

// NewConsoleNotifier writes notices to stdout and alerts to stderr.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{Out: os.Stdout, Err: os.Stderr}
}

// Notify implements session.Notifier.
func (n *ConsoleNotifier) Notify(title, message string) {
	fmt.Fprintf(n.Out, "%s: %s\n", title, message)
}

// Alert implements session.Notifier.
func (n *ConsoleNotifier) Alert(title, message string) {
	log.Error(title, "detail", message)
	fmt.Fprintf(n.Err, "❌ %s: %s\n", title, message)
}
