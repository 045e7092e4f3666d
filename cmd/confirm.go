package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
)

// lineConfirmer asks on out and reads a y/N answer from in.
type lineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (c lineConfirmer) Confirm(p quiz.Prompt) bool {
	fmt.Fprintf(c.out, "%s %s [y/N]: ", p.Title, p.Message)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmerFor returns quiz.Yes when --yes was given, otherwise a stdin
// prompt.
func confirmerFor(cmd *cobra.Command) quiz.Confirmer {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return quiz.Yes
	}
	return lineConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}
