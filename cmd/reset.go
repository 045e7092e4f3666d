package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/runner"
)

var resetCmd = &cobra.Command{
	Use:   "reset <id>",
	Short: "Discard the saved attempt for a test",
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
		if !r.ResetTest(confirmerFor(cmd)) {
			return quiz.ErrCancelled
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
