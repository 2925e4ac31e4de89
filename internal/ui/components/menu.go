package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pam/internal/ui/theme"
)

// MenuItem is a single selectable entry.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical selection list. Navigation wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation and selection.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected--
		if m.Selected < 0 {
			m.Selected = len(m.Items) - 1
		}
	case "down", "j":
		m.Selected++
		if m.Selected >= len(m.Items) {
			m.Selected = 0
		}
	case "enter":
		item := m.Items[m.Selected]
		if item.Action != nil {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
