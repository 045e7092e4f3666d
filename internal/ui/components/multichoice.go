package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// OptionLabels label the options of a question in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a question's options with a movable cursor. Once
// Chosen is set the options are locked and coloured against CorrectIndex.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	// Chosen is the recorded answer, or -1 while unanswered.
	Chosen int
}

// NewMultiChoice creates a new multiple-choice component. chosen is -1 for
// an unanswered question.
func NewMultiChoice(question string, options []string, correctIndex, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 {
		cursor = chosen
	}
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Cursor:       cursor,
		Chosen:       chosen,
	}
}

// Answered reports whether an option has been recorded.
func (m MultiChoice) Answered() bool { return m.Chosen >= 0 }

// Update moves the cursor. Answer selection is left to the owner so the
// engine stays the single source of truth.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Answered() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}

	return m, nil
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Answered() {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Answered() && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Answered() && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.Answered():
			style = theme.Unanswered
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the recorded answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.Chosen == m.CorrectIndex
}
