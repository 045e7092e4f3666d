package quiz

import "fmt"

// PromptKind identifies which gated transition a Prompt guards.
type PromptKind string

const (
	PromptFinish PromptKind = "finish"
	PromptReset  PromptKind = "reset"
	PromptDelete PromptKind = "delete"
)

// Prompt describes a confirmation the user must answer before a gated
// transition proceeds.
type Prompt struct {
	Kind    PromptKind
	Title   string
	Message string

	// Answered and Total are set for PromptFinish.
	Answered int
	Total    int
}

// Confirmer resolves a Prompt synchronously.
type Confirmer interface {
	Confirm(p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(p Prompt) bool

func (f ConfirmFunc) Confirm(p Prompt) bool { return f(p) }

type fixed bool

func (f fixed) Confirm(Prompt) bool { return bool(f) }

var (
	// Yes confirms every prompt.
	Yes Confirmer = fixed(true)

	// No declines every prompt.
	No Confirmer = fixed(false)
)

// FinishPrompt builds the prompt shown when finishing with unanswered questions.
func FinishPrompt(answered, total int) Prompt {
	return Prompt{
		Kind:     PromptFinish,
		Title:    "Finish test?",
		Message:  fmt.Sprintf("You answered %d of %d questions. Finish the test?", answered, total),
		Answered: answered,
		Total:    total,
	}
}

// ResetPrompt builds the prompt shown before discarding an attempt.
func ResetPrompt() Prompt {
	return Prompt{
		Kind:    PromptReset,
		Title:   "Start over?",
		Message: "All answers for this test will be lost.",
	}
}

// DeletePrompt builds the prompt shown before deleting a user test.
func DeletePrompt(title string) Prompt {
	return Prompt{
		Kind:    PromptDelete,
		Title:   "Delete test?",
		Message: fmt.Sprintf("Delete %q and its progress?", title),
	}
}
