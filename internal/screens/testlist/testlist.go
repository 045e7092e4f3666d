package testlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/create"
	"github.com/abhisek/quizbox/internal/screens/notice"
	"github.com/abhisek/quizbox/internal/screens/run"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// testsLoadedMsg carries a fresh snapshot of tests and their progress.
type testsLoadedMsg struct {
	Tests    []quiz.Test
	Progress map[string]quiz.ProgressRecord
}

// TestListScreen is the home screen: every test with its progress.
type TestListScreen struct {
	env      screen.Env
	tests    []quiz.Test
	progress map[string]quiz.ProgressRecord
	menu     components.Menu
	loaded   bool

	confirm   *components.Confirm
	pendingID string
}

var _ screen.Screen = (*TestListScreen)(nil)
var _ screen.KeyHintProvider = (*TestListScreen)(nil)
var _ screen.Refresher = (*TestListScreen)(nil)
var _ screen.Modal = (*TestListScreen)(nil)

// New creates a new TestListScreen.
func New(env screen.Env) *TestListScreen {
	return &TestListScreen{env: env}
}

func (s *TestListScreen) Init() tea.Cmd {
	return s.Refresh()
}

// Refresh reloads tests and progress. It runs whenever a screen above this
// one is popped, so badges reflect attempts made meanwhile.
func (s *TestListScreen) Refresh() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ctx := context.Background()
		return testsLoadedMsg{
			Tests:    env.Tests.LoadAll(ctx),
			Progress: env.Progress.LoadAllProgress(ctx),
		}
	}
}

func (s *TestListScreen) Title() string {
	return "Tests"
}

func (s *TestListScreen) Modal() bool {
	return s.confirm != nil
}

func (s *TestListScreen) KeyHints() []layout.KeyHint {
	if s.confirm != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Take test"},
		{Key: "N", Description: "New test"},
		{Key: "D", Description: "Delete"},
		{Key: "Q", Description: "Quit"},
	}
}

// Tests returns the currently listed tests.
func (s *TestListScreen) Tests() []quiz.Test {
	return s.tests
}

// Badge summarises a test's origin and stored progress.
func Badge(t quiz.Test, rec quiz.ProgressRecord, hasRecord bool) string {
	var parts []string
	if t.IsDefault {
		parts = append(parts, "built-in")
	}
	if hasRecord {
		answered := fmt.Sprintf("%d/%d", rec.AnsweredCount(), len(t.Questions))
		if rec.IsCompleted {
			r := quiz.CalculateResults(t.Questions, rec.Answers)
			parts = append(parts, fmt.Sprintf("done %d/%d correct", r.Correct, r.Total))
		} else {
			parts = append(parts, answered)
		}
	}
	return strings.Join(parts, " · ")
}

func (s *TestListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testsLoadedMsg:
		s.setTests(msg.Tests, msg.Progress)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TestListScreen) setTests(tests []quiz.Test, progress map[string]quiz.ProgressRecord) {
	s.tests = tests
	s.progress = progress
	s.loaded = true

	items := make([]components.MenuItem, len(tests))
	for i, t := range tests {
		rec, ok := progress[t.ID]
		id := t.ID
		items[i] = components.MenuItem{
			Label: t.Title,
			Badge: Badge(t, rec, ok),
			Action: func() tea.Cmd {
				return router.Push(run.New(s.env, id))
			},
		}
	}
	selected := s.menu.Selected
	s.menu = components.NewMenu(items)
	s.menu.Select(selected)
}

func (s *TestListScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirm != nil {
		c, d := s.confirm.Update(msg)
		if d == components.Pending {
			s.confirm = &c
			return s, nil
		}
		s.confirm = nil
		id := s.pendingID
		s.pendingID = ""
		if d != components.Accepted {
			return s, nil
		}
		return s, s.deleteConfirmed(id)
	}

	switch msg.String() {
	case "n":
		return s, router.Push(create.New(s.env))
	case "d":
		return s, s.requestDelete()
	case "q":
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// requestDelete asks the repository to delete the selected test with a
// confirmer that records the prompt and declines. Built-in tests fail
// before any prompt is produced.
func (s *TestListScreen) requestDelete() tea.Cmd {
	if len(s.tests) == 0 {
		return nil
	}
	t := s.tests[s.menu.Selected]

	var pending *quiz.Prompt
	_, err := s.env.Tests.Delete(context.Background(), t.ID, quiz.ConfirmFunc(func(p quiz.Prompt) bool {
		pending = &p
		return false
	}))
	if err != nil {
		return router.Push(notice.FromError(err))
	}
	if pending != nil {
		c := components.NewConfirm(*pending)
		s.confirm = &c
		s.pendingID = t.ID
	}
	return nil
}

func (s *TestListScreen) deleteConfirmed(id string) tea.Cmd {
	if _, err := s.env.Tests.Delete(context.Background(), id, quiz.Yes); err != nil {
		return router.Push(notice.FromError(err))
	}
	return s.Refresh()
}

func (s *TestListScreen) View(width, height int) string {
	if s.confirm != nil {
		return s.confirm.View(width, height)
	}
	if !s.loaded {
		return theme.Hint.Render("\n  Loading tests...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.PaddingLeft(2).Render("Choose a test"))
	b.WriteString("\n\n")

	if len(s.tests) == 0 {
		b.WriteString(theme.Hint.Render("  No tests yet. Press N to create one."))
		return b.String()
	}

	b.WriteString(s.menu.View())

	if t := s.tests[s.menu.Selected]; !layout.IsCompactWidth(width) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d questions", len(t.Questions))))
	}
	return b.String()
}
