// Package events holds the append-only narration log. It is the
// implementation of the narration and notification ports that the server
// wires into the character.
package events

import (
	"sync"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
)

// LineKind separates scrolling log lines from modal notifications.
type LineKind string

const (
	KindLine  LineKind = "line"
	KindModal LineKind = "modal"
)

// LogLine is an immutable record of something the player was told.
type LogLine struct {
	Seq     int64           `json:"seq"`
	Time    time.Time       `json:"time"`
	Kind    LineKind        `json:"kind"`
	Message string          `json:"message"`
	Style   narration.Style `json:"style,omitempty"`
	Title   string          `json:"title,omitempty"` // modals only
}

// LinePersister defines how a line is durably stored.
type LinePersister interface {
	AppendLine(line LogLine) error
}

// EventLog is the in-memory narration log. It keeps the most recent
// retention lines and fans every new line out to subscribers.
type EventLog struct {
	mu        sync.RWMutex
	lines     []LogLine
	retention int
	seq       int64
	persister LinePersister

	subs   map[int]chan LogLine
	nextID int

	pending sync.WaitGroup
}

var (
	_ narration.Narrator = (*EventLog)(nil)
	_ narration.Notifier = (*EventLog)(nil)
)

// NewEventLog creates a log with an optional persister. A non-positive
// retention keeps every line.
func NewEventLog(persister LinePersister, retention int) *EventLog {
	return &EventLog{
		lines:     make([]LogLine, 0),
		retention: retention,
		persister: persister,
		subs:      make(map[int]chan LogLine),
	}
}

// Resume continues numbering after seq, for logs reopened from storage.
func (el *EventLog) Resume(seq int64, recent []LogLine) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.seq = seq
	el.lines = append(el.lines[:0], recent...)
	el.trim()
}

// AppendLogLine implements narration.Narrator.
func (el *EventLog) AppendLogLine(message string, style narration.Style) {
	el.Append(LogLine{Kind: KindLine, Message: message, Style: style})
}

// ShowModal implements narration.Notifier.
func (el *EventLog) ShowModal(title, message string) {
	el.Append(LogLine{Kind: KindModal, Title: title, Message: message})
}

// Append stamps line with the next sequence number and the current time.
func (el *EventLog) Append(line LogLine) LogLine {
	el.mu.Lock()
	el.seq++
	line.Seq = el.seq
	if line.Time.IsZero() {
		line.Time = time.Now()
	}
	el.lines = append(el.lines, line)
	el.trim()
	for _, ch := range el.subs {
		select {
		case ch <- line:
		default:
			// Slow subscriber; it can catch up via Since.
		}
	}
	el.mu.Unlock()

	if el.persister != nil {
		el.pending.Add(1)
		go func(l LogLine) {
			defer el.pending.Done()
			_ = el.persister.AppendLine(l)
		}(line)
	}
	return line
}

// Wait blocks until every line handed to the persister has been written.
func (el *EventLog) Wait() {
	el.pending.Wait()
}

func (el *EventLog) trim() {
	if el.retention > 0 && len(el.lines) > el.retention {
		el.lines = append(el.lines[:0], el.lines[len(el.lines)-el.retention:]...)
	}
}

// Since returns the retained lines with a sequence number above seq.
func (el *EventLog) Since(seq int64) []LogLine {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []LogLine
	for _, l := range el.lines {
		if l.Seq > seq {
			result = append(result, l)
		}
	}
	return result
}

// Last returns the sequence number of the newest line.
func (el *EventLog) Last() int64 {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.seq
}

// Subscribe registers a buffered receiver for new lines. The returned
// function unsubscribes and closes the channel.
func (el *EventLog) Subscribe(buffer int) (<-chan LogLine, func()) {
	el.mu.Lock()
	defer el.mu.Unlock()
	id := el.nextID
	el.nextID++
	ch := make(chan LogLine, buffer)
	el.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			el.mu.Lock()
			delete(el.subs, id)
			el.mu.Unlock()
			close(ch)
		})
	}
}
