package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// MenuItem represents a single row in a Menu.
type MenuItem struct {
	Label string
	// Badge is rendered after the label, e.g. "built-in" or "3/5".
	Badge    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical selectable list.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Select(0)
	return m
}

// Select moves the cursor to the enabled item nearest to i, clamping i into
// range. It is used to keep the cursor stable when items are reloaded.
func (m *Menu) Select(i int) {
	if len(m.Items) == 0 {
		m.Selected = 0
		return
	}
	i = min(max(i, 0), len(m.Items)-1)
	for j := i; j < len(m.Items); j++ {
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
	for j := i - 1; j >= 0; j-- {
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
	m.Selected = i
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if item, ok := m.Current(); ok && item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style := theme.Unselected
		prefix := "    "
		switch {
		case item.Disabled:
			style = theme.Unanswered
		case i == m.Selected:
			style = theme.Selected
			prefix = "  ▸ "
		}
		b.WriteString(style.Render(prefix + item.Label))
		if item.Badge != "" {
			b.WriteString("  " + theme.Badge.Render(item.Badge))
		}
		b.WriteString("\n")
	}
	return b.String()
}
