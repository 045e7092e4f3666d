package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user test and its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer s.Close()

		ok, err := s.repo.Delete(cmd.Context(), args[0], confirmerFor(cmd))
		if err != nil {
			return err
		}
		if !ok {
			return quiz.ErrCancelled
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
