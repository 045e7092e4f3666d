package run

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/runner"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

func (s *RunScreen) View(width, height int) string {
	if s.runner == nil {
		return renderLoading(width)
	}
	if s.confirm != nil {
		return s.confirm.View(width, height)
	}
	return s.renderQuestion(width)
}

func (s *RunScreen) renderQuestion(width int) string {
	r := s.runner
	var b strings.Builder

	nav := components.QuestionNav{Marks: r.Marks(), Current: r.CurrentIndex()}
	b.WriteString("  " + nav.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  Question %d of %d", r.CurrentIndex()+1, r.QuestionCount())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View()))
	b.WriteString("\n")

	switch {
	case r.State() == runner.StateCompleted:
		b.WriteString(theme.Badge.Render("  Completed. Press F for results or R to start over."))
	case s.choice.Answered():
		b.WriteString(theme.Hint.Render("  Answer locked. Use → for the next question."))
	default:
		b.WriteString(theme.Hint.Render("  Select 1-4, or move with ↑↓ and press Enter."))
	}

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading test...")
}
