package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// PathResolutionError reports that a node path segment could not be found
// in the displayed tree. Selection is aborted, never crashed.
type PathResolutionError struct {
	Depth int    // index of the missing segment, root = 0
	Label string // best-effort label of the missing segment
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("node path segment %d (%s) not found in current tree", e.Depth, e.Label)
}

// DisplayCallbackError reports a failure while rendering an event's
// details. The originating log entry is left intact.
type DisplayCallbackError struct {
	Err error
}

func (e *DisplayCallbackError) Error() string {
	return fmt.Sprintf("event details failed: %v", e.Err)
}

func (e *DisplayCallbackError) Unwrap() error { return e.Err }

// ProviderInitError reports that the accessibility provider failed to
// start. The inspector stays usable, just empty.
type ProviderInitError struct {
	Err error
}

func (e *ProviderInitError) Error() string {
	return fmt.Sprintf("accessibility provider failed to start: %v", e.Err)
}

func (e *ProviderInitError) Unwrap() error { return e.Err }

// formatErrorChain renders err's cause chain, most specific first, with
// continuation lines indented for readability:
//
//	children: accessible object is gone: handle already disposed
//	  caused by: handle already disposed
func formatErrorChain(err error) string {
	var b strings.Builder
	first := true
	for e := err; e != nil; e = errors.Unwrap(e) {
		if first {
			b.WriteString(e.Error())
			first = false
		} else {
			b.WriteString("\n  caused by: ")
			b.WriteString(e.Error())
		}
	}
	return b.String()
}
