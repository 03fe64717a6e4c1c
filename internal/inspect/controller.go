package inspect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateDisposed
)

// Config wires a Controller to its collaborators. Every callback runs on
// the UI-affine executor and must not block.
type Config struct {
	// Provider is the accessibility bridge. When nil, Initialize asks
	// bridge.NewProvider for the platform's provider; failure to start
	// is surfaced as a status message and the inspector stays usable
	// but empty.
	Provider bridge.Provider

	// SharedProvider leaves Provider running on Dispose, for embedding
	// the controller over a provider whose lifecycle belongs to the
	// host (e.g. one MCP server serving many tool calls).
	SharedProvider bool

	// Overlay and Tooltip are the host shell's topmost windows. Nil is
	// fine for headless use.
	Overlay Window
	Tooltip TooltipWindow

	Logger *zap.Logger

	// OnTreeChanged fires after the displayed tree was rebuilt.
	OnTreeChanged func()
	// OnSelectionChanged fires with the newly selected row and its
	// property bag, both taken from the same node snapshot. Nil row
	// means the selection was cleared.
	OnSelectionChanged func(node *TreeNode, props bridge.PropertyList)
	// OnStatus receives one-line status bar updates.
	OnStatus func(msg string)
	// OnNotice receives messages that need the user's attention
	// (display-callback failures).
	OnNotice func(msg string)
	// OnLogEntry streams every appended log row.
	OnLogEntry func(e LogEntry)
}

// Controller owns the live tree, the event log, and the overlay, and is
// the only component allowed to mutate them. Public methods may be called
// from any goroutine; each marshals onto the UI-affine executor. Methods
// suffixed "Locked" already run there.
type Controller struct {
	cfg    Config
	logger *zap.Logger
	exec   *executor
	log    *EventLog

	provider bridge.Provider
	tree     *TreeModel
	router   *eventRouter
	overlay  *overlayController

	options  bridge.PropertyOptions
	selected *TreeNode
	state    State
}

// New creates an uninitialized controller. Call Initialize before use and
// Dispose when done.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		cfg:     cfg,
		logger:  logger,
		exec:    newExecutor(logger),
		log:     NewEventLog(),
		overlay: newOverlayController(cfg.Overlay, cfg.Tooltip),
		options: bridge.DefaultPropertyOptions,
	}
	if cfg.OnLogEntry != nil {
		c.log.SetSink(cfg.OnLogEntry)
	}
	return c
}

// Initialize starts the provider, builds the initial tree, and moves the
// controller to Ready. A provider that fails to start leaves the
// inspector usable but empty. Calling Initialize twice is a no-op.
func (c *Controller) Initialize() error {
	return c.exec.Call(func() error {
		if c.state != StateUninitialized {
			return nil
		}
		c.state = StateInitializing

		provider := c.cfg.Provider
		if provider == nil {
			var err error
			provider, err = bridge.NewProvider()
			if err != nil {
				initErr := &ProviderInitError{Err: err}
				c.log.AppendError("Initialize", initErr)
				c.statusLocked(initErr.Error())
				c.logger.Warn("provider init failed", zap.Error(err))
				provider = nil
			}
		}
		c.provider = provider
		c.tree = newTreeModel(provider)
		c.router = newEventRouter(provider, c.exec, c.log, c.logger)
		c.router.selectSource = c.selectSourceLocked
		c.router.onJavaShutdown = func(int) { c.refreshTreeLocked() }

		err := c.refreshTreeLocked()
		c.state = StateReady
		c.statusLocked("Ready")
		return err
	})
}

// Dispose releases every tree handle, shuts the provider down, and stops
// the executor. Idempotent; any call after the first is a no-op.
func (c *Controller) Dispose() {
	_ = c.exec.Call(func() error {
		if c.state == StateDisposed {
			return nil
		}
		c.state = StateDisposed
		if c.router != nil {
			c.router.DisableAll()
		}
		c.clearSelectionLocked()
		if c.tree != nil {
			c.tree.DisposeAll()
		}
		c.log.Clear()
		// Handles are all released by now; only then may the provider
		// go away.
		if c.provider != nil {
			if !c.cfg.SharedProvider {
				c.provider.Shutdown()
			}
			c.provider = nil
		}
		return nil
	})
	c.exec.Close()
}

// ready guards executor-side entry points after lifecycle transitions.
func (c *Controller) ready() error {
	switch c.state {
	case StateReady:
		return nil
	case StateDisposed:
		return fmt.Errorf("controller is disposed")
	default:
		return fmt.Errorf("controller is not initialized")
	}
}

// RefreshTree rebuilds the displayed tree from the provider's current
// windows, disposing the previous tree first.
func (c *Controller) RefreshTree() error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		return c.refreshTreeLocked()
	})
}

func (c *Controller) refreshTreeLocked() error {
	if c.tree == nil {
		return nil
	}
	c.clearSelectionLocked()
	err := c.tree.Refresh()
	if err != nil {
		c.log.AppendError("Refresh tree", err)
	}
	if c.cfg.OnTreeChanged != nil {
		c.cfg.OnTreeChanged()
	}
	return err
}

// RefreshTick refreshes only when the tree shows nothing yet; the
// periodic poll that first finds Java windows after startup.
func (c *Controller) RefreshTick() {
	c.exec.Post(func() {
		if c.state != StateReady || c.tree == nil || !c.tree.Empty() {
			return
		}
		_ = c.refreshTreeLocked()
	})
}

// Roots returns a snapshot of the current root rows.
func (c *Controller) Roots() []*TreeNode {
	roots, _ := callOn(c.exec, func() ([]*TreeNode, error) {
		if c.tree == nil {
			return nil, nil
		}
		return c.tree.Roots(), nil
	})
	return roots
}

// Selected returns the currently selected row, nil when none.
func (c *Controller) Selected() *TreeNode {
	sel, _ := callOn(c.exec, func() (*TreeNode, error) { return c.selected, nil })
	return sel
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	st, err := callOn(c.exec, func() (State, error) { return c.state, nil })
	if err != nil {
		return StateDisposed
	}
	return st
}

// LogEntries returns a snapshot of the event log, oldest first.
func (c *Controller) LogEntries() []LogEntry {
	entries, _ := callOn(c.exec, func() ([]LogEntry, error) { return c.log.Entries(), nil })
	return entries
}

// LogMessage appends a formatted message row to the event log.
func (c *Controller) LogMessage(format string, args ...any) {
	c.exec.Post(func() { c.log.Appendf(format, args...) })
}

// ClearSelectedNode drops the selection and hides the overlay.
func (c *Controller) ClearSelectedNode() {
	c.exec.Post(func() {
		c.clearSelectionLocked()
		c.notifySelectionLocked(nil, nil)
	})
}

func (c *Controller) clearSelectionLocked() {
	c.selected = nil
	c.overlay.Clear()
	c.overlay.HideTooltip()
}

// SelectTreeNode selects a row previously obtained from Roots or
// Children, refreshing the property panel and overlay from it.
func (c *Controller) SelectTreeNode(n *TreeNode) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		return c.selectLocked(n)
	})
}

// SelectPath re-locates the path's leaf in the current tree and selects
// it. A path that no longer resolves is reported as one diagnostic log
// row and leaves the prior selection unchanged. The path is consumed.
func (c *Controller) SelectPath(p *NodePath) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			p.Dispose()
			return err
		}
		return c.selectPathLocked(p)
	})
}

func (c *Controller) selectPathLocked(p *NodePath) error {
	defer p.Dispose()
	row, err := c.tree.ResolvePath(p)
	if err != nil {
		c.log.AppendError("Select node", err)
		return nil
	}
	return c.selectLocked(row)
}

// selectLocked enters NodeSelected: the overlay rectangle and property
// panel refresh atomically from the same node snapshot.
func (c *Controller) selectLocked(n *TreeNode) error {
	if n == nil || n.IsPlaceholder() || n.Node() == nil {
		c.clearSelectionLocked()
		c.notifySelectionLocked(nil, nil)
		return nil
	}
	node := n.Node()
	props, err := node.Properties(c.options)
	if err != nil {
		c.log.AppendError("Fetch properties", err)
		props = nil
	}
	rect, rectErr := node.ScreenRect()

	c.selected = n
	if rectErr == nil {
		c.overlay.Show(rect)
	} else {
		c.overlay.Clear()
	}
	c.notifySelectionLocked(n, props)
	return nil
}

func (c *Controller) notifySelectionLocked(n *TreeNode, props bridge.PropertyList) {
	if c.cfg.OnSelectionChanged != nil {
		c.cfg.OnSelectionChanged(n, props)
	}
}

// selectSourceLocked re-selects an event's source node: rebuild its path
// up to the root, redescend through the displayed tree, select. The
// source handle is borrowed, never disposed here.
func (c *Controller) selectSourceLocked(src bridge.Node) error {
	path, err := BuildNodePath(src)
	if err != nil {
		path.disposeParents()
		c.log.AppendError("Locate event source", err)
		return nil
	}
	row, resolveErr := c.tree.ResolvePath(path)
	path.disposeParents()
	if resolveErr != nil {
		c.log.AppendError("Locate event source", resolveErr)
		return nil
	}
	return c.selectLocked(row)
}

// ExpandNode expands or collapses a row.
func (c *Controller) ExpandNode(n *TreeNode, expanded bool) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		if err := n.SetExpanded(expanded); err != nil {
			c.log.AppendError("Expand node", err)
			return err
		}
		return nil
	})
}

// ResetNodeChildren forces re-enumeration of a row's children while
// keeping the row itself.
func (c *Controller) ResetNodeChildren(n *TreeNode) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		if err := n.ResetChildren(); err != nil {
			c.log.AppendError("Reset children", err)
			return err
		}
		if c.cfg.OnTreeChanged != nil {
			c.cfg.OnTreeChanged()
		}
		return nil
	})
}

// GetNodePathAt hit-tests the screen point against the provider's
// current windows. Synchronous; runs on the executor.
func (c *Controller) GetNodePathAt(pt bridge.Point) (*NodePath, error) {
	return callOn(c.exec, func() (*NodePath, error) {
		if err := c.ready(); err != nil {
			return nil, err
		}
		return NodePathAt(c.provider, pt)
	})
}

// SelectNodeAtPoint selects the deepest node under the screen point.
func (c *Controller) SelectNodeAtPoint(pt bridge.Point) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		path, err := NodePathAt(c.provider, pt)
		if err != nil {
			c.log.AppendError("Hit test", err)
			return err
		}
		if path == nil {
			c.statusLocked(fmt.Sprintf("No node at (%d,%d)", pt.X, pt.Y))
			return nil
		}
		return c.selectPathLocked(path)
	})
}

// ShowOverlayForPath positions the overlay over the path's leaf. The
// path is consumed.
func (c *Controller) ShowOverlayForPath(p *NodePath) {
	c.exec.Post(func() {
		defer p.Dispose()
		leaf := p.Leaf()
		if leaf == nil {
			return
		}
		rect, err := leaf.ScreenRect()
		if err != nil {
			c.log.AppendError("Overlay bounds", err)
			return
		}
		c.overlay.Show(rect)
	})
}

// HideOverlayWindow hides the overlay without forgetting the selection.
func (c *Controller) HideOverlayWindow() {
	c.exec.Post(func() { c.overlay.Hide() })
}

// EnableOverlayWindow administratively enables or disables the overlay.
func (c *Controller) EnableOverlayWindow(enabled bool) {
	c.exec.Post(func() { c.overlay.SetEnabled(enabled) })
}

// ShowToolTip shows the leaf's tooltip properties above-left of the
// cursor point. The path is consumed.
func (c *Controller) ShowToolTip(cursor bridge.Point, p *NodePath) {
	c.exec.Post(func() {
		defer p.Dispose()
		leaf := p.Leaf()
		if leaf == nil {
			return
		}
		props, err := leaf.TooltipProperties()
		if err != nil {
			c.log.AppendError("Tooltip", err)
			return
		}
		c.overlay.ShowTooltip(cursor, props)
	})
}

// HideToolTip hides the tooltip window.
func (c *Controller) HideToolTip() {
	c.exec.Post(func() { c.overlay.HideTooltip() })
}

// OnFocusLost hides overlay and tooltip while the inspector itself is in
// the background.
func (c *Controller) OnFocusLost() {
	c.exec.Post(func() {
		c.overlay.Hide()
		c.overlay.HideTooltip()
	})
}

// OnFocusGained restores the overlay for the current selection.
func (c *Controller) OnFocusGained() {
	c.exec.Post(func() { c.overlay.apply() })
}

// Options returns the current property fetch options.
func (c *Controller) Options() bridge.PropertyOptions {
	opts, _ := callOn(c.exec, func() (bridge.PropertyOptions, error) { return c.options, nil })
	return opts
}

// SetOptions replaces the property fetch options. Takes effect on the
// next fetch; nothing cached is invalidated because nothing is cached.
func (c *Controller) SetOptions(opts bridge.PropertyOptions) {
	c.exec.Post(func() { c.options = opts })
}

// SetEventEnabled toggles one event kind's subscription.
func (c *Controller) SetEventEnabled(kind bridge.EventKind, on bool) error {
	return c.exec.Call(func() error {
		if err := c.ready(); err != nil {
			return err
		}
		return c.router.SetEnabled(kind, on)
	})
}

// EnabledEvents returns the currently subscribed event kinds.
func (c *Controller) EnabledEvents() []bridge.EventKind {
	kinds, _ := callOn(c.exec, func() ([]bridge.EventKind, error) {
		if c.router == nil {
			return nil, nil
		}
		return c.router.EnabledKinds(), nil
	})
	return kinds
}

// ShowEventDetails runs the deferred display action of a log row. A
// failing action is surfaced as a user notice; the log row stays intact.
func (c *Controller) ShowEventDetails(seq int64) error {
	return c.exec.Call(func() error {
		entry := c.log.Find(seq)
		if entry == nil {
			return fmt.Errorf("log row %d no longer exists", seq)
		}
		if entry.Details == nil {
			return nil
		}
		err := runDisplay(entry.Details)
		if err != nil {
			display := &DisplayCallbackError{Err: err}
			c.noticeLocked(display.Error())
			return display
		}
		return nil
	})
}

// runDisplay invokes a display callback, converting panics to errors.
func runDisplay(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (c *Controller) statusLocked(msg string) {
	if c.cfg.OnStatus != nil {
		c.cfg.OnStatus(msg)
	}
}

func (c *Controller) noticeLocked(msg string) {
	if c.cfg.OnNotice != nil {
		c.cfg.OnNotice(msg)
		return
	}
	c.log.AppendEntry(LogEntry{Text: msg, IsError: true})
}
