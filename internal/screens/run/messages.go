package run

import "github.com/abhisek/quizbox/internal/runner"

// runnerOpenedMsg is sent when the engine has resolved the test id.
type runnerOpenedMsg struct {
	Runner *runner.Runner
	Err    error
}
