// Package console echoes alerts to a terminal with severity coloring.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/storm-alertd/internal/domain"
)

// ANSI colors per severity.
var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityExtreme:  lipgloss.Color("5"), // purple
	domain.SeveritySevere:   lipgloss.Color("1"), // red
	domain.SeverityModerate: lipgloss.Color("3"), // yellow
	domain.SeverityMinor:    lipgloss.Color("2"), // green
	domain.SeverityUnknown:  lipgloss.Color("7"), // light gray
}

// Printer writes one line per alert. It implements pipeline.Notifier so it
// can sit alongside the desktop sink.
type Printer struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a Printer. Color is used only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		out:      w,
		renderer: lipgloss.NewRenderer(w),
	}
}

// SeverityStyle returns the style used for a severity label.
func (p *Printer) SeverityStyle(s domain.Severity) lipgloss.Style {
	c, ok := severityColors[s]
	if !ok {
		c = severityColors[domain.SeverityUnknown]
	}
	return p.renderer.NewStyle().Foreground(c).Bold(s >= domain.SeveritySevere)
}

// Line formats an alert for the console.
func (p *Printer) Line(a domain.Alert) string {
	label := p.SeverityStyle(a.Severity).Render(a.Severity.String())
	line := fmt.Sprintf("%s: %s", label, a.Label())
	if a.Headline != "" {
		line += " - " + a.Headline
	}
	if a.AreaDesc != "" {
		line += " [" + a.AreaDesc + "]"
	}
	return line
}

func (p *Printer) Show(_ context.Context, n domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.out, p.Line(n.Alert))
	return err
}
