package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ResultsScreen displays the score of a finished attempt.
type ResultsScreen struct {
	testTitle string
	results   quiz.Results
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a new ResultsScreen.
func New(testTitle string, r quiz.Results) *ResultsScreen {
	return &ResultsScreen{testTitle: testTitle, results: r}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) Results() quiz.Results {
	return s.results
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review answers"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop()
		}
	}
	return s, nil
}

// verdict is the one-line summary under the score.
func verdict(r quiz.Results) string {
	p := r.Percent()
	switch {
	case r.Total > 0 && r.Correct == r.Total:
		return "Perfect score!"
	case p >= 0.7:
		return "Well done."
	case p >= 0.4:
		return "Not bad. Review the questions you missed."
	default:
		return "Keep practising."
	}
}

func (s *ResultsScreen) View(width, height int) string {
	r := s.results
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, s.testTitle))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body.Bold(true), fmt.Sprintf("%d / %d correct", r.Correct, r.Total)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, verdict(r)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Score", r.Percent(), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	stats := theme.Correct.Render(fmt.Sprintf("Correct: %d", r.Correct)) + "      " +
		theme.Incorrect.Render(fmt.Sprintf("Incorrect: %d", r.Incorrect)) + "      " +
		theme.Unanswered.Render(fmt.Sprintf("Unanswered: %d", r.Unanswered))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stats))

	return b.String()
}
