package inspect

import (
	"fmt"
	"time"
)

const (
	// logCap is the maximum number of rows a log holds.
	logCap = 1000
	// logEvictBatch is how many of the oldest rows are dropped in one go
	// when an insert would exceed logCap. Batch eviction bounds redraw
	// cost; evicting one row per insert would redraw on every event.
	logEvictBatch = 100
)

// LogEntry is one rendered event or message row.
type LogEntry struct {
	Seq  int64     `yaml:"seq"            json:"seq"`
	Time time.Time `yaml:"time"           json:"time"`
	Text string    `yaml:"text"           json:"text"`
	// IsError marks rows produced from a caught exception chain.
	IsError bool `yaml:"error,omitempty" json:"error,omitempty"`

	// Details, when set, re-opens the event: typically re-selecting the
	// source node in the tree. It is the only reference retained beyond
	// the row's construction.
	Details func() error `yaml:"-" json:"-"`
	// release frees resources owned by the row (the event's source
	// handle). Called exactly once, on eviction or Clear.
	release func()
}

// HasDetails reports whether the row is detail-dialog eligible.
func (e *LogEntry) HasDetails() bool { return e.Details != nil }

// EventLog is a bounded, ordered log of user-visible rows. It is owned by
// the UI-affine executor: all methods must run on it.
type EventLog struct {
	entries []LogEntry
	nextSeq int64
	sink    func(LogEntry)
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{nextSeq: 1}
}

// SetSink registers a notifier invoked for every appended row, after the
// row is stored. Used by UI shells to stream rows.
func (l *EventLog) SetSink(sink func(LogEntry)) { l.sink = sink }

// Append adds a plain message row and returns its sequence id.
func (l *EventLog) Append(text string) int64 {
	return l.AppendEntry(LogEntry{Text: text})
}

// Appendf adds a formatted message row.
func (l *EventLog) Appendf(format string, args ...any) int64 {
	return l.Append(fmt.Sprintf(format, args...))
}

// AppendError adds an error row carrying err's full cause chain, most
// specific first, continuation lines indented.
func (l *EventLog) AppendError(context string, err error) int64 {
	return l.AppendEntry(LogEntry{
		Text:    fmt.Sprintf("%s: %s", context, formatErrorChain(err)),
		IsError: true,
	})
}

// AppendEntry stamps and stores a row, evicting the oldest logEvictBatch
// rows first when the log is full.
func (l *EventLog) AppendEntry(e LogEntry) int64 {
	if len(l.entries) >= logCap {
		for i := 0; i < logEvictBatch; i++ {
			if l.entries[i].release != nil {
				l.entries[i].release()
			}
		}
		l.entries = append(l.entries[:0], l.entries[logEvictBatch:]...)
	}
	e.Seq = l.nextSeq
	l.nextSeq++
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	l.entries = append(l.entries, e)
	if l.sink != nil {
		l.sink(e)
	}
	return e.Seq
}

// Entries returns a snapshot of the current rows, oldest first.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of stored rows.
func (l *EventLog) Len() int { return len(l.entries) }

// Find returns the stored row with the given sequence id, or nil.
func (l *EventLog) Find(seq int64) *LogEntry {
	for i := range l.entries {
		if l.entries[i].Seq == seq {
			return &l.entries[i]
		}
	}
	return nil
}

// Clear drops every row, releasing row-owned resources.
func (l *EventLog) Clear() {
	for i := range l.entries {
		if l.entries[i].release != nil {
			l.entries[i].release()
		}
	}
	l.entries = l.entries[:0]
}
