package bridge

import (
	"fmt"
	"runtime"
)

// Handler receives accessibility events. Handlers are invoked on a
// goroutine owned by the provider, never on the caller's goroutine.
type Handler func(ev Event)

// Provider is the accessibility bridge collaborator: it enumerates the
// top-level accessible windows of running Java applications and delivers
// native accessibility events.
type Provider interface {
	// Windows enumerates the top-level accessible nodes of every Java
	// application the bridge can see: one JVM root per process with its
	// windows as children, or bare windows when the bridge reports no
	// process grouping. Each returned Node is a fresh handle owned by
	// the caller.
	Windows() ([]Node, error)

	// Subscribe registers the handler for one event kind. At most one
	// handler per kind; subscribing an already-subscribed kind replaces
	// the handler.
	Subscribe(kind EventKind, h Handler) error

	// Unsubscribe removes the handler for one event kind. Unsubscribing
	// a kind that was never subscribed is a no-op.
	Unsubscribe(kind EventKind) error

	// Shutdown releases the provider. Nodes obtained from a shut-down
	// provider report NodeGoneError on access.
	Shutdown()
}

// ErrUnsupported is returned on platforms without a bridge binding.
var ErrUnsupported = fmt.Errorf("no access bridge available on %s/%s; use --sim or a platform build with a bridge binding", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// The Windows Access Bridge binding registers itself here; no binding is
// compiled into the portable tree.
var NewProviderFunc func() (Provider, error)

// NewProvider returns the platform's bridge provider.
func NewProvider() (Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
