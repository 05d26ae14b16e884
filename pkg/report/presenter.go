package report

import (
	"fmt"
	"io"
	"sync"
)

// Presenter receives the three status updates of a run. The
// harness calls them in order: Building, QueueBuilt, Completed.
type Presenter interface {
	Building() error
	QueueBuilt(status QueueStatus) error
	Completed(summary *Summary) error
}

// TextPresenter writes plain text status lines to a writer.
type TextPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextPresenter creates a TextPresenter writing to w.
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

func (p *TextPresenter) Building() error {
	return p.write(BuildingText())
}

func (p *TextPresenter) QueueBuilt(status QueueStatus) error {
	return p.write(QueueBuiltText(status))
}

func (p *TextPresenter) Completed(summary *Summary) error {
	return p.write(CompletedText(summary))
}

func (p *TextPresenter) write(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, text)
	return err
}

// MultiPresenter fans every update out to several presenters.
// All presenters are called; the first error is returned.
type MultiPresenter []Presenter

func (m MultiPresenter) Building() error {
	return m.each(func(p Presenter) error { return p.Building() })
}

func (m MultiPresenter) QueueBuilt(status QueueStatus) error {
	return m.each(func(p Presenter) error {
		return p.QueueBuilt(status)
	})
}

func (m MultiPresenter) Completed(summary *Summary) error {
	return m.each(func(p Presenter) error {
		return p.Completed(summary)
	})
}

func (m MultiPresenter) each(fn func(Presenter) error) error {
	var first error
	for _, p := range m {
		if err := fn(p); err != nil && first == nil {
			first = err
		}
	}
	return first
}
