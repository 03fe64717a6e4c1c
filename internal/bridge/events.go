package bridge

import "fmt"

// EventKind identifies one discrete native accessibility event type.
type EventKind string

const (
	EventFocusGained EventKind = "focusGained"
	EventFocusLost   EventKind = "focusLost"

	EventCaretUpdate EventKind = "caretUpdate"

	EventMouseClicked  EventKind = "mouseClicked"
	EventMouseEntered  EventKind = "mouseEntered"
	EventMouseExited   EventKind = "mouseExited"
	EventMousePressed  EventKind = "mousePressed"
	EventMouseReleased EventKind = "mouseReleased"

	EventMenuSelected   EventKind = "menuSelected"
	EventMenuDeselected EventKind = "menuDeselected"
	EventMenuCanceled   EventKind = "menuCanceled"

	EventPopupMenuWillBecomeVisible   EventKind = "popupMenuWillBecomeVisible"
	EventPopupMenuWillBecomeInvisible EventKind = "popupMenuWillBecomeInvisible"
	EventPopupMenuCanceled            EventKind = "popupMenuCanceled"

	// EventPropertyChange is the umbrella property event. Observed to be
	// best-effort in real bridges; the subscription hook is kept but
	// nothing relies on it firing.
	EventPropertyChange EventKind = "propertyChange"

	EventPropertyNameChange             EventKind = "propertyNameChange"
	EventPropertyDescriptionChange      EventKind = "propertyDescriptionChange"
	EventPropertyStateChange            EventKind = "propertyStateChange"
	EventPropertyValueChange            EventKind = "propertyValueChange"
	EventPropertySelectionChange        EventKind = "propertySelectionChange"
	EventPropertyTextChange             EventKind = "propertyTextChange"
	EventPropertyCaretChange            EventKind = "propertyCaretChange"
	EventPropertyVisibleDataChange      EventKind = "propertyVisibleDataChange"
	EventPropertyChildChange            EventKind = "propertyChildChange"
	EventPropertyActiveDescendentChange EventKind = "propertyActiveDescendentChange"

	EventJavaShutdown EventKind = "javaShutdown"
)

// AllEventKinds lists every event kind in menu/display order.
func AllEventKinds() []EventKind {
	return []EventKind{
		EventFocusGained,
		EventFocusLost,
		EventCaretUpdate,
		EventMouseClicked,
		EventMouseEntered,
		EventMouseExited,
		EventMousePressed,
		EventMouseReleased,
		EventMenuSelected,
		EventMenuDeselected,
		EventMenuCanceled,
		EventPopupMenuWillBecomeVisible,
		EventPopupMenuWillBecomeInvisible,
		EventPopupMenuCanceled,
		EventPropertyChange,
		EventPropertyNameChange,
		EventPropertyDescriptionChange,
		EventPropertyStateChange,
		EventPropertyValueChange,
		EventPropertySelectionChange,
		EventPropertyTextChange,
		EventPropertyCaretChange,
		EventPropertyVisibleDataChange,
		EventPropertyChildChange,
		EventPropertyActiveDescendentChange,
		EventJavaShutdown,
	}
}

// ParseEventKind converts a CLI/tool string into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	for _, k := range AllEventKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown event kind: %q", s)
}

// Event is one native accessibility callback payload. Source is a fresh
// handle owned by the receiver; Old and New carry the optional old/new
// scalar pair of double-value property events (string, or int for caret
// positions) and must be preserved verbatim until render time.
type Event struct {
	Kind   EventKind
	JvmID  int
	Source Node
	Old    any
	New    any
}
