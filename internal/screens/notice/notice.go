package notice

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// NoticeScreen is a blocking acknowledgment dialog. Any of Enter, Esc or
// Space pops it.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

// FromError builds the notice for an engine or repository error.
func FromError(err error) *NoticeScreen {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		return New("Test not found", "The requested test does not exist.")
	case errors.Is(err, quiz.ErrMalformedTest):
		return New("Test unavailable", "This test has no usable questions.")
	case errors.Is(err, quiz.ErrCannotDeleteDefault):
		return New("Cannot delete", "Built-in tests cannot be deleted.")
	case errors.Is(err, quiz.ErrValidationFailed):
		return New("Check the form", err.Error())
	default:
		return New("Something went wrong", err.Error())
	}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) Message() string {
	return n.message
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "OK"}}
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space", " ":
			return n, router.Pop()
		}
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	body := theme.Title.Render(n.title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-10, 60)).Render(n.message) + "\n\n" +
		theme.Hint.Render("Press Enter to continue")
	return layout.Center(theme.Dialog.Render(body), width, height)
}
