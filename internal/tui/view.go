package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	blurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if !m.ready {
		return "Starting inspector..."
	}

	paneW := m.width / 2
	topH := m.height - m.height/3 - 2
	logH := m.height - topH - 4

	tree := m.viewTree(paneW-4, topH-2)
	props := m.props.View()
	log := m.viewLog(m.width-4, logH)

	treeBox := m.borderFor(treePane).Width(paneW - 2).Height(topH).
		Render(titleStyle.Render("Accessible Tree") + "\n" + tree)
	propsBox := m.borderFor(propsPane).Width(m.width - paneW - 2).Height(topH).
		Render(titleStyle.Render("Properties") + "\n" + props)
	logBox := m.borderFor(logPane).Width(m.width - 2).Height(logH + 1).
		Render(titleStyle.Render("Events") + "\n" + log)

	top := lipgloss.JoinHorizontal(lipgloss.Top, treeBox, propsBox)

	status := m.status
	if m.notice != "" {
		status = errorStyle.Render(m.notice)
	} else {
		status = statusStyle.Render(status)
	}
	help := statusStyle.Render("  q quit · tab pane · enter select · ←/→ collapse/expand · e events · r refresh")

	return lipgloss.JoinVertical(lipgloss.Left, top, logBox, status+help)
}

func (m Model) borderFor(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedBorder
	}
	return blurredBorder
}

// viewTree renders the visible rows around the cursor.
func (m Model) viewTree(width, height int) string {
	if len(m.rows) == 0 {
		return ""
	}
	// Keep the cursor in the visible window.
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		line := treeLine(m.rows[i], i == m.cursor)
		if len(line) > width && width > 3 {
			line = line[:width-3] + "..."
		}
		if i == m.cursor && m.focus == treePane {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// viewLog renders the newest log lines that fit.
func (m Model) viewLog(width, height int) string {
	if len(m.logLines) == 0 {
		return statusStyle.Render("no events yet — press e to enable event routing")
	}
	start := 0
	if len(m.logLines) > height {
		start = len(m.logLines) - height
	}
	var b strings.Builder
	for i := start; i < len(m.logLines); i++ {
		line := m.logLines[i]
		if len(line) > width && width > 3 {
			line = line[:width-3] + "..."
		}
		b.WriteString(line)
		if i < len(m.logLines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
