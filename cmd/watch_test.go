package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// failAfterWriter accepts n writes, then fails every later one.
type failAfterWriter struct {
	n   int
	buf bytes.Buffer
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("broken pipe")
	}
	w.n--
	return w.buf.Write(p)
}

func TestStreamEncoder_StopsAfterWriteError(t *testing.T) {
	w := &failAfterWriter{n: 1}
	s := newStreamEncoder(w)

	s.Emit(map[string]int{"a": 1})
	if s.Err() != nil {
		t.Fatalf("healthy stream reported error: %v", s.Err())
	}
	select {
	case <-s.Failed():
		t.Fatal("failed channel closed on a healthy stream")
	default:
	}

	s.Emit(map[string]int{"b": 2})
	if s.Err() == nil {
		t.Fatal("write error was not recorded")
	}
	select {
	case <-s.Failed():
	default:
		t.Fatal("failed channel not closed after write error")
	}

	// Later rows are dropped, not retried against the broken writer.
	w.n = 1
	s.Emit(map[string]int{"c": 3})
	if got := w.buf.String(); strings.Contains(got, `"c"`) {
		t.Errorf("row emitted after failure: %q", got)
	}
	if !strings.Contains(w.buf.String(), `"a":1`) {
		t.Errorf("first row missing from stream: %q", w.buf.String())
	}
}
