package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/inspect"
	"github.com/chrishoke/access-bridge-explorer/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream accessibility events as JSONL",
	Long: `Subscribe to accessibility events from running Java applications and
stream each one as a JSON line to stdout. Focus changes, property changes,
caret movement, and JVM lifecycle events are reported as they arrive.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("events", "all", "Comma-separated event kinds to enable (e.g. \"focusGained,propertyValueChange\")")
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
}

// streamEncoder writes JSONL rows until the first write error, then drops
// every later row. A broken stdout pipe ends the watch instead of
// silently losing the stream.
type streamEncoder struct {
	enc  *json.Encoder
	down chan struct{}
	once sync.Once
	err  error
}

func newStreamEncoder(w io.Writer) *streamEncoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &streamEncoder{enc: enc, down: make(chan struct{})}
}

// Emit writes one row; after a failure it is a no-op.
func (s *streamEncoder) Emit(v any) {
	select {
	case <-s.down:
		return
	default:
	}
	if err := s.enc.Encode(v); err != nil {
		s.once.Do(func() {
			s.err = err
			close(s.down)
		})
	}
}

// Failed is closed after the first write error.
func (s *streamEncoder) Failed() <-chan struct{} { return s.down }

// Err returns the first write error, nil while the stream is healthy.
func (s *streamEncoder) Err() error {
	select {
	case <-s.down:
		return s.err
	default:
		return nil
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	eventsStr, _ := cmd.Flags().GetString("events")
	durationSec, _ := cmd.Flags().GetInt("duration")

	kinds, err := bridge.ParseEventKindList(eventsStr)
	if err != nil {
		provider.Shutdown()
		return err
	}

	stream := newStreamEncoder(os.Stdout)

	var eventCount atomic.Int64
	c := inspect.New(inspect.Config{
		Provider: provider,
		OnLogEntry: func(e inspect.LogEntry) {
			eventCount.Add(1)
			stream.Emit(output.WatchEvent{
				Seq:   e.Seq,
				TS:    e.Time.Unix(),
				Text:  e.Text,
				Error: e.IsError,
			})
		},
	})
	if err := c.Initialize(); err != nil {
		c.Dispose()
		return fmt.Errorf("initial tree read failed: %w", err)
	}

	// Baseline before events start flowing, so the snapshot line never
	// interleaves with event lines.
	start := time.Now()
	stream.Emit(map[string]interface{}{
		"type": "snapshot",
		"ts":   start.Unix(),
		"jvms": len(c.Roots()),
	})

	for _, k := range kinds {
		if err := c.SetEventEnabled(k, true); err != nil {
			c.Dispose()
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	if durationSec > 0 {
		select {
		case <-sig:
		case <-time.After(time.Duration(durationSec) * time.Second):
		case <-stream.Failed():
		}
	} else {
		select {
		case <-sig:
		case <-stream.Failed():
		}
	}

	// Dispose drains in-flight events before shutting the provider down.
	c.Dispose()

	stream.Emit(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		"events":  eventCount.Load(),
	})

	if err := stream.Err(); err != nil {
		return fmt.Errorf("writing event stream: %w", err)
	}
	return nil
}
