// Package preview offers an interactive terminal browser over a computed
// layout: arrow keys move between pages and systems, rendered with the
// teacher's lipgloss/bubbletea pattern.
package preview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/session"
)

var (
	primaryColor = lipgloss.Color("#00FFFF")
	accentColor  = lipgloss.Color("#00FF00")
	dimColor     = lipgloss.Color("#666666")
	errorColor   = lipgloss.Color("#FF6666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	currentSystemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	systemStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	errStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// tickMsg drives periodic re-render while the controller is still
// producing pages in the background.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model: it owns a session.Controller and tracks
// which system within the current page is highlighted.
type Model struct {
	controller   *session.Controller
	currentSys   int
	quitting     bool
	width        int
	height       int
	documentName string
}

// NewModel builds a preview model over an already-started controller.
func NewModel(documentName string, controller *session.Controller) *Model {
	return &Model{controller: controller, documentName: documentName, width: 100, height: 30}
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.controller.TogglePause()
		case "left":
			m.controller.SeekRelative(-1)
			m.currentSys = 0
		case "right":
			m.controller.SeekRelative(1)
			m.currentSys = 0
		case "up":
			if m.currentSys > 0 {
				m.currentSys--
			}
		case "down":
			m.currentSys++
		}
		return m, nil
	case tickMsg:
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — page %d/%d", m.documentName, m.controller.CursorIndex()+1, max1(m.controller.PageCount()))))
	b.WriteString("\n")

	if err := m.controller.Err(); err != nil {
		b.WriteString(errStyle.Render(err.Error()))
		b.WriteString("\n")
	}

	page, ok := m.controller.CurrentPage()
	if !ok {
		b.WriteString(headerStyle.Render("laying out…"))
		b.WriteString("\n")
	} else {
		b.WriteString(renderPage(page, m.currentSys))
	}

	status := "playing"
	if m.controller.Finished() {
		status = "done"
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("[%s] ←/→ page  ↑/↓ system  space pause  q quit", status)))
	return b.String()
}

// renderPage lists each system box (a page's direct children) and the
// shape count it owns, highlighting currentSys.
func renderPage(page *geom.Box, currentSys int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%.0f x %.0f, %d systems", page.Bounds.Size.W, page.Bounds.Size.H, len(page.Children))))
	b.WriteString("\n")

	for i, sys := range page.Children {
		line := fmt.Sprintf("system %-3d  y=%-6.0f shapes=%-4d slices=%d", i, sys.Bounds.Origin.Y, len(sys.AllShapes()), len(sys.Children))
		if i == currentSys {
			b.WriteString(currentSystemStyle.Render("> " + line))
		} else {
			b.WriteString(systemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
