package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	jsonMarshal       = json.Marshal
	jsonMarshalIndent = json.MarshalIndent
)

// Event is one line of the JSON status stream.
type Event struct {
	Type      string       `json:"event"`
	Timestamp time.Time    `json:"timestamp"`
	Status    *QueueStatus `json:"status,omitempty"`
	Summary   *Summary     `json:"summary,omitempty"`
}

// Event types shared by the JSON stream and the monitor hub.
const (
	EventBuilding   = "building"
	EventQueueBuilt = "queue_built"
	EventAssertion  = "assertion"
	EventCompleted  = "completed"
)

// JSONPresenter writes each status update as a single JSON line.
type JSONPresenter struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewJSONPresenter creates a JSONPresenter writing to w.
func NewJSONPresenter(w io.Writer) *JSONPresenter {
	return &JSONPresenter{w: w, now: time.Now}
}

func (p *JSONPresenter) Building() error {
	return p.emit(Event{Type: EventBuilding})
}

func (p *JSONPresenter) QueueBuilt(status QueueStatus) error {
	return p.emit(Event{Type: EventQueueBuilt, Status: &status})
}

func (p *JSONPresenter) Completed(summary *Summary) error {
	return p.emit(Event{Type: EventCompleted, Summary: summary})
}

func (p *JSONPresenter) emit(ev Event) error {
	ev.Timestamp = p.now()
	data, err := jsonMarshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// GenerateJSON encodes a summary, indented when pretty is true.
func GenerateJSON(summary *Summary, pretty bool) ([]byte, error) {
	if pretty {
		return jsonMarshalIndent(summary, "", "  ")
	}
	return jsonMarshal(summary)
}
