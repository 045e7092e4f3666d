package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/authoring"
)

var createCmd = &cobra.Command{
	Use:   "create -f <draft.yaml|draft.json>",
	Short: "Create a test from a draft file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read draft: %w", err)
		}
		d, err := authoring.ParseDraft(data, authoring.FormatFromPath(path))
		if err != nil {
			return err
		}

		s, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer s.Close()

		return submitDraft(cmd, s, d)
	},
}

func init() {
	createCmd.Flags().StringP("file", "f", "", "Draft file (.json, .yaml or .yml)")
	_ = createCmd.MarkFlagRequired("file")
}

// submitDraft validates and adds d, printing the new id or every violation.
func submitDraft(cmd *cobra.Command, s *services, d authoring.Draft) error {
	id, err := authoring.Submit(cmd.Context(), s.repo, d)
	var verr *authoring.ValidationError
	if errors.As(err, &verr) {
		for _, v := range verr.Violations {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", v.Field, v.Message)
		}
		return fmt.Errorf("draft has %d problem(s): %w", len(verr.Violations), verr)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
