package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
)

var takeCmd = &cobra.Command{
	Use:   "take <id>",
	Short: "Open a test directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, app.Options{TestID: args[0]})
	},
}
