package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/authoring"
	"github.com/abhisek/quizbox/internal/draftgen"
	"github.com/abhisek/quizbox/internal/llm"
)

var draftCmd = &cobra.Command{
	Use:   "draft <topic>",
	Short: "Generate a test draft with an LLM",
	Long: `Generate a test draft about a topic with the configured LLM provider.

The draft is printed as YAML so it can be edited and passed to "quizbox create -f".
With --save it is validated and added right away; with --edit it opens in the
test editor.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		save, _ := cmd.Flags().GetBool("save")
		edit, _ := cmd.Flags().GetBool("edit")
		if save && edit {
			return fmt.Errorf("--save and --edit cannot be combined")
		}

		s, err := setup(cmd, !edit)
		if err != nil {
			return err
		}
		defer s.Close()

		d, err := generateDraft(cmd.Context(), s, strings.Join(args, " "), n)
		if err != nil {
			return err
		}

		switch {
		case edit:
			opts := app.Options{Env: s.env(), Draft: &d}
			return app.Run(opts)
		case save:
			return submitDraft(cmd, s, d)
		}

		out, err := authoring.MarshalYAML(d)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	draftCmd.Flags().IntP("questions", "n", draftgen.DefaultQuestions, "Number of questions")
	draftCmd.Flags().Bool("save", false, "Validate and add the draft as a new test")
	draftCmd.Flags().Bool("edit", false, "Open the draft in the test editor")
}

func generateDraft(ctx context.Context, s *services, topic string, n int) (authoring.Draft, error) {
	cfg := s.cfg.LLM
	if !cfg.Discover() {
		return authoring.Draft{}, fmt.Errorf("LLM provider not configured: %w", cfg.Validate())
	}
	provider, err := llm.NewProvider(ctx, cfg, s.log)
	if err != nil {
		return authoring.Draft{}, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	return draftgen.New(provider, draftgen.DefaultConfig()).Generate(ctx, draftgen.Request{
		Topic:     topic,
		Questions: n,
	})
}
