package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
	colorCyan  = lipgloss.Color("51")
	colorDim   = lipgloss.Color("240")
)

// ConsolePresenter renders the same text as TextPresenter with
// terminal colors. Colors are dropped when w is not a terminal.
type ConsolePresenter struct {
	mu      sync.Mutex
	w       io.Writer
	status  lipgloss.Style
	header  lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	failure lipgloss.Style
}

// NewConsolePresenter creates a ConsolePresenter writing to w.
func NewConsolePresenter(w io.Writer) *ConsolePresenter {
	r := lipgloss.NewRenderer(w)
	return &ConsolePresenter{
		w:       w,
		status:  r.NewStyle().Foreground(colorDim),
		header:  r.NewStyle().Foreground(colorCyan).Bold(true),
		pass:    r.NewStyle().Foreground(colorGreen).Bold(true),
		fail:    r.NewStyle().Foreground(colorRed).Bold(true),
		failure: r.NewStyle().Foreground(colorRed).PaddingLeft(2),
	}
}

func (p *ConsolePresenter) Building() error {
	return p.write(p.status.Render(BuildingText()))
}

func (p *ConsolePresenter) QueueBuilt(status QueueStatus) error {
	lines := strings.SplitN(QueueBuiltText(status), "\n", 2)
	out := p.header.Render(lines[0])
	if len(lines) > 1 {
		out += "\n" + p.status.Render(lines[1])
	}
	return p.write(out)
}

func (p *ConsolePresenter) Completed(summary *Summary) error {
	var b strings.Builder
	b.WriteString(p.header.Render(completedHeader))
	b.WriteString("\n")

	style := p.pass
	if !summary.Passed() {
		style = p.fail
	}
	b.WriteString(style.Render(SummaryLine(summary.Totals)))

	for _, note := range notes(summary) {
		b.WriteString("\n")
		b.WriteString(p.status.Render(note))
	}
	for _, f := range summary.Failures {
		b.WriteString("\n")
		b.WriteString(p.failure.Render(FailureLine(f)))
	}
	return p.write(b.String())
}

func (p *ConsolePresenter) write(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, text)
	return err
}
