package inspect

import (
	"fmt"
	"strings"
	"testing"
)

func TestEventLog_SequenceIsMonotonic(t *testing.T) {
	l := NewEventLog()
	for i := 0; i < 5; i++ {
		l.Appendf("row %d", i)
	}
	entries := l.Entries()
	for i, e := range entries {
		if e.Seq != int64(i+1) {
			t.Fatalf("entry %d has seq %d", i, e.Seq)
		}
		if e.Time.IsZero() {
			t.Fatalf("entry %d has zero timestamp", i)
		}
	}
}

func TestEventLog_BatchEviction(t *testing.T) {
	l := NewEventLog()
	for i := 0; i < 1000; i++ {
		l.Appendf("row %d", i)
	}
	if l.Len() != 1000 {
		t.Fatalf("expected 1000 rows before overflow, got %d", l.Len())
	}

	l.Append("row 1000")

	if l.Len() != 901 {
		t.Fatalf("expected 901 rows after overflow, got %d", l.Len())
	}
	entries := l.Entries()
	if entries[0].Seq != 101 {
		t.Errorf("expected oldest surviving seq 101, got %d", entries[0].Seq)
	}
	if entries[len(entries)-1].Seq != 1001 {
		t.Errorf("expected newest seq 1001, got %d", entries[len(entries)-1].Seq)
	}
}

func TestEventLog_EvictionReleasesRows(t *testing.T) {
	l := NewEventLog()
	released := 0
	for i := 0; i < 1000; i++ {
		l.AppendEntry(LogEntry{Text: "row", release: func() { released++ }})
	}
	l.Append("overflow")
	if released != 100 {
		t.Errorf("expected 100 released rows, got %d", released)
	}
	l.Clear()
	if released != 1000 {
		t.Errorf("expected all 1000 rows released after clear, got %d", released)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty log after clear, got %d", l.Len())
	}
}

func TestEventLog_AppendErrorFormatsChain(t *testing.T) {
	l := NewEventLog()
	inner := fmt.Errorf("object not found")
	outer := fmt.Errorf("children: %w", inner)
	l.AppendError("FocusGained", outer)

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entries))
	}
	e := entries[0]
	if !e.IsError {
		t.Error("expected error row")
	}
	lines := strings.Split(e.Text, "\n")
	if !strings.HasPrefix(lines[0], "FocusGained: children: object not found") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if len(lines) != 2 || lines[1] != "  caused by: object not found" {
		t.Errorf("unexpected continuation: %q", e.Text)
	}
}

func TestEventLog_SinkSeesStoredRow(t *testing.T) {
	l := NewEventLog()
	var seen []int64
	l.SetSink(func(e LogEntry) { seen = append(seen, e.Seq) })
	l.Append("a")
	l.Append("b")
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("sink saw %v", seen)
	}
}
