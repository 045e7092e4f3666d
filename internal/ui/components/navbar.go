package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// QuestionNav renders one cell per question, coloured by its mark, with
// the current question bracketed.
type QuestionNav struct {
	Marks   []quiz.Mark
	Current int
}

// Cell returns the unstyled text for question i.
func (n QuestionNav) Cell(i int) string {
	glyph := "·"
	switch n.Marks[i] {
	case quiz.MarkCorrect:
		glyph = "✓"
	case quiz.MarkIncorrect:
		glyph = "✗"
	}
	if i == n.Current {
		return fmt.Sprintf("[%d%s]", i+1, glyph)
	}
	return fmt.Sprintf(" %d%s ", i+1, glyph)
}

// View renders the navigation strip.
func (n QuestionNav) View() string {
	cells := make([]string, len(n.Marks))
	for i, m := range n.Marks {
		style := theme.Unanswered
		switch {
		case i == n.Current:
			style = theme.Selected
		case m == quiz.MarkCorrect:
			style = theme.Correct
		case m == quiz.MarkIncorrect:
			style = theme.Incorrect
		}
		cells[i] = style.Render(n.Cell(i))
	}
	return strings.Join(cells, "")
}
