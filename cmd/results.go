package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/runner"
)

var resultsCmd = &cobra.Command{
	Use:   "results <id>",
	Short: "Print the score of the saved attempt for a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := runner.Open(cmd.Context(), s.repo, s.storage, args[0], runner.WithLogger(s.log))
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeResultsJSON(cmd.OutOrStdout(), r)
		}
		return writeResults(cmd.OutOrStdout(), r)
	},
}

func init() {
	resultsCmd.Flags().Bool("json", false, "Print JSON")
}

// resultsView is what both output formats print for an attempt.
type resultsView struct {
	TestID    string       `json:"testId"`
	Title     string       `json:"title"`
	Completed bool         `json:"completed"`
	Results   quiz.Results `json:"results"`
	Marks     []string     `json:"marks"`
}

func viewOf(r *runner.Runner) resultsView {
	marks := make([]string, 0, r.QuestionCount())
	for _, m := range r.Marks() {
		marks = append(marks, m.String())
	}
	return resultsView{
		TestID:    r.Test().ID,
		Title:     r.Test().Title,
		Completed: r.State() == runner.StateCompleted,
		Results:   r.CalculateResults(),
		Marks:     marks,
	}
}

func writeResults(w io.Writer, r *runner.Runner) error {
	v := viewOf(r)
	status := "in progress"
	if v.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "%s (%s)\n", v.Title, status)
	fmt.Fprintf(w, "  correct:    %d\n", v.Results.Correct)
	fmt.Fprintf(w, "  incorrect:  %d\n", v.Results.Incorrect)
	fmt.Fprintf(w, "  unanswered: %d\n", v.Results.Unanswered)
	fmt.Fprintf(w, "  total:      %d\n", v.Results.Total)
	_, err := fmt.Fprintf(w, "  score:      %.0f%%\n", v.Results.Percent()*100)
	return err
}

func writeResultsJSON(w io.Writer, r *runner.Runner) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(viewOf(r))
}
