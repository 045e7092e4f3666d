package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Decision is the outcome of a key press on a Confirm dialog.
type Decision int

const (
	Pending Decision = iota
	Accepted
	Declined
)

// Confirm is a yes/no dialog for a pending quiz.Prompt. Focus starts on
// "No" so a stray Enter never discards data.
type Confirm struct {
	Prompt quiz.Prompt
	onYes  bool
}

// NewConfirm creates a dialog for p.
func NewConfirm(p quiz.Prompt) Confirm {
	return Confirm{Prompt: p}
}

// Update handles a key press and reports whether the prompt was resolved.
func (c Confirm) Update(msg tea.Msg) (Confirm, Decision) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, Pending
	}

	switch kmsg.String() {
	case "y", "Y":
		return c, Accepted
	case "n", "N", "esc":
		return c, Declined
	case "left", "right", "tab", "h", "l":
		c.onYes = !c.onYes
	case "enter":
		if c.onYes {
			return c, Accepted
		}
		return c, Declined
	}
	return c, Pending
}

// Confirmer answers the prompt with d.
func (d Decision) Confirmer() quiz.Confirmer {
	if d == Accepted {
		return quiz.Yes
	}
	return quiz.No
}

// View renders the dialog centred in width x height.
func (c Confirm) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(c.Prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(c.Prompt.Message))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		NewButton("[Y] Yes", c.onYes).View(),
		"  ",
		NewButton("[N] No", !c.onYes).View(),
	))

	box := theme.Dialog.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
