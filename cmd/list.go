package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tests with their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		tests := s.repo.LoadAll(ctx)
		progress := s.storage.LoadAllProgress(ctx)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeListJSON(cmd.OutOrStdout(), tests, progress)
		}
		return writeList(cmd.OutOrStdout(), tests, progress)
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

// progressLabel describes stored progress for the list output.
func progressLabel(t quiz.Test, rec quiz.ProgressRecord, ok bool) string {
	switch {
	case !ok:
		return "not started"
	case rec.IsCompleted:
		r := quiz.CalculateResults(t.Questions, rec.Answers)
		return fmt.Sprintf("completed %d/%d", r.Correct, r.Total)
	default:
		return fmt.Sprintf("%d/%d answered", rec.AnsweredCount(), len(t.Questions))
	}
}

func writeList(w io.Writer, tests []quiz.Test, progress map[string]quiz.ProgressRecord) error {
	if len(tests) == 0 {
		_, err := fmt.Fprintln(w, "No tests found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQUESTIONS\tKIND\tPROGRESS")
	for _, t := range tests {
		kind := "user"
		if t.IsDefault {
			kind = "built-in"
		}
		rec, ok := progress[t.ID]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", t.ID, t.Title, len(t.Questions), kind, progressLabel(t, rec, ok))
	}
	return tw.Flush()
}

type listEntry struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Questions int                  `json:"questions"`
	IsDefault bool                 `json:"isDefault"`
	Progress  *quiz.ProgressRecord `json:"progress,omitempty"`
}

func writeListJSON(w io.Writer, tests []quiz.Test, progress map[string]quiz.ProgressRecord) error {
	entries := make([]listEntry, 0, len(tests))
	for _, t := range tests {
		e := listEntry{ID: t.ID, Title: t.Title, Questions: len(t.Questions), IsDefault: t.IsDefault}
		if rec, ok := progress[t.ID]; ok {
			e.Progress = &rec
		}
		entries = append(entries, e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
