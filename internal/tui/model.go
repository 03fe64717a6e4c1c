package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/inspect"
)

// pane identifies which panel has keyboard focus.
type pane int

const (
	treePane pane = iota
	propsPane
	logPane
)

// refreshInterval drives the only-if-empty tree retry tick.
const refreshInterval = 2 * time.Second

// logViewCap bounds how many rows the log pane keeps.
const logViewCap = 200

type (
	treeChangedMsg      struct{}
	selectionChangedMsg struct {
		node  *inspect.TreeNode
		props bridge.PropertyList
	}
	statusMsg   string
	noticeMsg   string
	logEntryMsg inspect.LogEntry
	tickMsg     time.Time
	rowsMsg     []row
)

// row is one visible line of the tree pane, snapshotted from the
// controller so rendering never reads live tree state.
type row struct {
	node        *inspect.TreeNode
	depth       int
	label       string
	expanded    bool
	placeholder bool
}

// Model is the bubbletea model for the inspector.
//
// Controller methods block on the controller's internal goroutine, and
// that goroutine delivers messages back into the program's queue — the
// queue this Update drains. Calling the controller inside Update would
// therefore wedge both sides, so every key handler returns a command and
// the outcome arrives as a message.
type Model struct {
	ctrl *inspect.Controller

	rows   []row
	cursor int

	props    viewport.Model
	logLines []string
	status   string
	notice   string

	eventsOn bool
	focus    pane
	width    int
	height   int
	ready    bool
}

func newModel(c *inspect.Controller) Model {
	return Model{
		ctrl:   c,
		status: "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRows(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadRows snapshots the visible tree rows from the controller's current
// roots.
func (m Model) loadRows() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		var rows []row
		for _, root := range ctrl.Roots() {
			rows = appendRows(rows, root, 0)
		}
		return rowsMsg(rows)
	}
}

func appendRows(rows []row, n *inspect.TreeNode, depth int) []row {
	rows = append(rows, row{
		node:        n,
		depth:       depth,
		label:       n.Label(),
		expanded:    n.Expanded(),
		placeholder: n.IsPlaceholder(),
	})
	if !n.Expanded() {
		return rows
	}
	for _, c := range n.Children() {
		rows = appendRows(rows, c, depth+1)
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case rowsMsg:
		m.rows = []row(msg)
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case treeChangedMsg:
		return m, m.loadRows()

	case selectionChangedMsg:
		if msg.node == nil {
			m.props.SetContent("")
		} else {
			m.props.SetContent(msg.props.Text())
		}
		return m, m.loadRows()

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, nil

	case logEntryMsg:
		line := inspect.LogEntry(msg).Text
		if inspect.LogEntry(msg).IsError {
			line = "! " + line
		}
		m.logLines = append(m.logLines, line)
		if len(m.logLines) > logViewCap {
			m.logLines = m.logLines[len(m.logLines)-logViewCap:]
		}
		return m, nil

	case tickMsg:
		ctrl := m.ctrl
		refresh := func() tea.Msg {
			ctrl.RefreshTick()
			return nil
		}
		return m, tea.Batch(refresh, tick())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "r":
		ctrl := m.ctrl
		return m, func() tea.Msg {
			if err := ctrl.RefreshTree(); err != nil {
				return noticeMsg(err.Error())
			}
			return nil
		}

	case "e":
		m.eventsOn = !m.eventsOn
		on := m.eventsOn
		if on {
			m.status = "Events on"
		} else {
			m.status = "Events off"
		}
		ctrl := m.ctrl
		return m, func() tea.Msg {
			for _, k := range bridge.AllEventKinds() {
				if err := ctrl.SetEventEnabled(k, on); err != nil {
					return noticeMsg(err.Error())
				}
			}
			return nil
		}

	case "up", "k":
		if m.focus == treePane {
			if m.cursor > 0 {
				m.cursor--
			}
		} else {
			m.props.LineUp(1)
		}
		return m, nil

	case "down", "j":
		if m.focus == treePane {
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		} else {
			m.props.LineDown(1)
		}
		return m, nil

	case "right", "l":
		return m, m.expandCmd(true)

	case "left", "h":
		return m, m.expandCmd(false)

	case "enter", " ":
		n := m.currentNode()
		if n == nil {
			return m, nil
		}
		m.notice = ""
		ctrl := m.ctrl
		return m, func() tea.Msg {
			if err := ctrl.SelectTreeNode(n); err != nil {
				return noticeMsg(err.Error())
			}
			return nil
		}

	case "backspace":
		n := m.currentNode()
		if n == nil {
			return m, nil
		}
		ctrl := m.ctrl
		return m, func() tea.Msg {
			if err := ctrl.ResetNodeChildren(n); err != nil {
				return noticeMsg(err.Error())
			}
			return nil
		}
	}

	return m, nil
}

// expandCmd expands or collapses the cursor row off the event loop.
// Expansion does not change the selection, so the controller fires no
// callback; the command reports the tree change itself.
func (m Model) expandCmd(expanded bool) tea.Cmd {
	n := m.currentNode()
	if n == nil {
		return nil
	}
	ctrl := m.ctrl
	return func() tea.Msg {
		if err := ctrl.ExpandNode(n, expanded); err != nil {
			return noticeMsg(err.Error())
		}
		return treeChangedMsg{}
	}
}

func (m *Model) currentNode() *inspect.TreeNode {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if r.placeholder {
		return nil
	}
	return r.node
}

// layout sizes the property viewport from the window dimensions.
func (m *Model) layout() {
	propsW := m.width - m.width/2 - 4
	propsH := m.height - m.height/3 - 4
	if propsW < 10 {
		propsW = 10
	}
	if propsH < 3 {
		propsH = 3
	}
	if !m.ready {
		m.props = viewport.New(propsW, propsH)
	} else {
		m.props.Width = propsW
		m.props.Height = propsH
	}
}

// treeLine renders one tree row with indent and expansion marker.
func treeLine(r row, selected bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.depth))
	switch {
	case r.placeholder:
		b.WriteString("  ")
	case r.expanded:
		b.WriteString("- ")
	default:
		b.WriteString("+ ")
	}
	b.WriteString(r.label)
	if selected {
		return "> " + b.String()
	}
	return "  " + b.String()
}
