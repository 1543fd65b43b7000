package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/estate-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

// Toast writes one-line failure notices to a terminal writer — the CLI
// stand-in for the web client's toast popups. The gateway guarantees at
// most one notice per failed call; Toast just renders them in order.
type Toast struct {
	mu    sync.Mutex
	out   io.Writer
	style lipgloss.Style
}

var _ ports.Notifier = (*Toast)(nil)

func NewToast(out io.Writer) *Toast {
	return &Toast{
		out:   out,
		style: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

func (t *Toast) NotifyError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, t.style.Render("✗ "+message))
}
