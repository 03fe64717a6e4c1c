package inspect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// EventInfo is the immutable record a dispatch handler produces: the
// event's display name, the source handle it owns, the optional old/new
// scalar pair, and the deferred display action. It is destroyed once
// rendered into a log row; only the stored display callback and the
// row-owned source handle outlive it.
type EventInfo struct {
	Name    string
	Source  bridge.Node
	Old     any
	New     any
	Display func() error
}

// eventHandler renders one native event kind into the log. Runs on the
// UI-affine executor.
type eventHandler func(r *eventRouter, ev bridge.Event)

// eventHandlers is the static dispatch table: exactly one handler per
// event kind, built at compile time. No runtime type inspection.
var eventHandlers = map[bridge.EventKind]eventHandler{
	bridge.EventFocusGained: (*eventRouter).handleSource,
	bridge.EventFocusLost:   (*eventRouter).handleSource,

	bridge.EventCaretUpdate: (*eventRouter).handleSource,

	bridge.EventMouseClicked:  (*eventRouter).handleSource,
	bridge.EventMouseEntered:  (*eventRouter).handleSource,
	bridge.EventMouseExited:   (*eventRouter).handleSource,
	bridge.EventMousePressed:  (*eventRouter).handleSource,
	bridge.EventMouseReleased: (*eventRouter).handleSource,

	bridge.EventMenuSelected:   (*eventRouter).handleSource,
	bridge.EventMenuDeselected: (*eventRouter).handleSource,
	bridge.EventMenuCanceled:   (*eventRouter).handleSource,

	bridge.EventPopupMenuWillBecomeVisible:   (*eventRouter).handleSource,
	bridge.EventPopupMenuWillBecomeInvisible: (*eventRouter).handleSource,
	bridge.EventPopupMenuCanceled:            (*eventRouter).handleSource,

	// Umbrella property event; subscription kept although real bridges
	// may never fire it.
	bridge.EventPropertyChange: (*eventRouter).handleValueChange,

	bridge.EventPropertyNameChange:             (*eventRouter).handleValueChange,
	bridge.EventPropertyDescriptionChange:      (*eventRouter).handleValueChange,
	bridge.EventPropertyStateChange:            (*eventRouter).handleValueChange,
	bridge.EventPropertyValueChange:            (*eventRouter).handleValueChange,
	bridge.EventPropertySelectionChange:        (*eventRouter).handleValueChange,
	bridge.EventPropertyTextChange:             (*eventRouter).handleValueChange,
	bridge.EventPropertyCaretChange:            (*eventRouter).handleValueChange,
	bridge.EventPropertyVisibleDataChange:      (*eventRouter).handleSource,
	bridge.EventPropertyChildChange:            (*eventRouter).handleValueChange,
	bridge.EventPropertyActiveDescendentChange: (*eventRouter).handleValueChange,

	bridge.EventJavaShutdown: (*eventRouter).handleJavaShutdown,
}

// eventRouter subscribes to native accessibility callbacks per event
// kind, hops them onto the UI-affine executor, and renders them into the
// event log. Everything except dispatch runs on the executor.
type eventRouter struct {
	provider bridge.Provider
	exec     *executor
	log      *EventLog
	logger   *zap.Logger

	// selectSource re-selects an event's source node in the tree. The
	// node is borrowed for the duration of the call.
	selectSource func(src bridge.Node) error
	// onJavaShutdown reacts to a JVM going away (tree refresh).
	onJavaShutdown func(jvmID int)

	enabled map[bridge.EventKind]bool
}

func newEventRouter(provider bridge.Provider, exec *executor, log *EventLog, logger *zap.Logger) *eventRouter {
	return &eventRouter{
		provider: provider,
		exec:     exec,
		log:      log,
		logger:   logger,
		enabled:  make(map[bridge.EventKind]bool),
	}
}

// SetEnabled toggles one event kind. Enabling subscribes the kind with
// the provider; disabling unsubscribes it, so a disabled kind carries no
// subscription overhead at all.
func (r *eventRouter) SetEnabled(kind bridge.EventKind, on bool) error {
	if _, known := eventHandlers[kind]; !known {
		return fmt.Errorf("no handler for event kind %q", kind)
	}
	if r.provider == nil {
		return fmt.Errorf("no accessibility provider")
	}
	if on == r.enabled[kind] {
		return nil
	}
	if on {
		if err := r.provider.Subscribe(kind, r.dispatch); err != nil {
			return err
		}
		r.enabled[kind] = true
		return nil
	}
	if err := r.provider.Unsubscribe(kind); err != nil {
		return err
	}
	delete(r.enabled, kind)
	return nil
}

// IsEnabled reports whether the kind is currently subscribed.
func (r *eventRouter) IsEnabled(kind bridge.EventKind) bool { return r.enabled[kind] }

// EnabledKinds returns the subscribed kinds in display order.
func (r *eventRouter) EnabledKinds() []bridge.EventKind {
	var kinds []bridge.EventKind
	for _, k := range bridge.AllEventKinds() {
		if r.enabled[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// DisableAll unsubscribes everything; used on dispose.
func (r *eventRouter) DisableAll() {
	for kind := range r.enabled {
		if err := r.provider.Unsubscribe(kind); err != nil {
			r.logger.Warn("unsubscribe failed", zap.String("kind", string(kind)), zap.Error(err))
		}
		delete(r.enabled, kind)
	}
}

// dispatch is the provider-facing entry point. It runs on a goroutine
// owned by the provider and must not touch shared state: it only hops the
// event onto the executor.
func (r *eventRouter) dispatch(ev bridge.Event) {
	handler, ok := eventHandlers[ev.Kind]
	if !ok {
		// Unknown kinds are still surfaced, never silently dropped.
		handler = (*eventRouter).handleSource
	}
	if !r.exec.Post(func() { handler(r, ev) }) {
		// The event lost the shutdown race; no handler will ever own
		// its source handle, so release it here.
		if ev.Source != nil {
			ev.Source.Dispose()
		}
	}
}

// handleSource renders an event carrying only a source node.
func (r *eventRouter) handleSource(ev bridge.Event) {
	r.deliver(ev, EventInfo{Name: eventDisplayName(ev.Kind), Source: ev.Source})
}

// handleValueChange renders a double-value property event. Old and new
// values pass through verbatim; caret positions stay numeric until the
// row text is built here.
func (r *eventRouter) handleValueChange(ev bridge.Event) {
	r.deliver(ev, EventInfo{
		Name:   eventDisplayName(ev.Kind),
		Source: ev.Source,
		Old:    ev.Old,
		New:    ev.New,
	})
}

// handleJavaShutdown logs the JVM departure and triggers a tree refresh.
// The event has no resolvable source.
func (r *eventRouter) handleJavaShutdown(ev bridge.Event) {
	if ev.Source != nil {
		ev.Source.Dispose()
	}
	r.log.Appendf("%s: JVM %d", eventDisplayName(ev.Kind), ev.JvmID)
	if r.onJavaShutdown != nil {
		r.onJavaShutdown(ev.JvmID)
	}
}

// deliver materializes the event's source, renders the row, and installs
// the deferred display action. A source that can no longer be resolved
// produces an error row carrying the cause chain instead.
func (r *eventRouter) deliver(ev bridge.Event, info EventInfo) {
	src := info.Source
	var srcLabel string
	if src != nil {
		var err error
		srcLabel, err = materialize(src)
		if err != nil {
			src.Dispose()
			r.log.AppendError(info.Name, err)
			return
		}
	}

	entry := LogEntry{Text: renderEventText(info, srcLabel)}
	if src != nil {
		display := info.Display
		if display == nil && r.selectSource != nil {
			display = func() error { return r.selectSource(src) }
		}
		entry.Details = display
		entry.release = func() { src.Dispose() }
	}
	r.log.AppendEntry(entry)
}

// materialize resolves the source into a display label, failing when the
// remote object is gone.
func materialize(src bridge.Node) (string, error) {
	if err := src.Refresh(); err != nil {
		return "", err
	}
	role, err := src.Role()
	if err != nil {
		return "", err
	}
	title, err := src.Title()
	if err != nil {
		return "", err
	}
	if title == "" {
		return role, nil
	}
	return fmt.Sprintf("%s %q", role, title), nil
}

// renderEventText builds the row text: name, source label, and for
// double-value events the verbatim old -> new pair.
func renderEventText(info EventInfo, srcLabel string) string {
	text := info.Name
	if srcLabel != "" {
		text += ": " + srcLabel
	}
	if info.Old != nil || info.New != nil {
		text += fmt.Sprintf(": %v -> %v", scalar(info.Old), scalar(info.New))
	}
	return text
}

// scalar formats one old/new payload for display. Strings are quoted so
// empty and whitespace values stay visible; numbers render as-is.
func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return `""`
	case string:
		return fmt.Sprintf("%q", s)
	default:
		return fmt.Sprint(v)
	}
}

// eventDisplayName renders "focusGained" as "FocusGained".
func eventDisplayName(kind bridge.EventKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
