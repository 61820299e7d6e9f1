package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/export"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print a conversation transcript to stdout",
	Long: `Looks up a conversation by its slug and prints the full transcript.
Output is rendered for the terminal; when stdout is not a TTY the raw
markdown is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	conv, err := st.GetBySlug(ctx, args[0])
	if err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return fmt.Errorf("no conversation with slug %q; run 'recall list' to see slugs", args[0])
		}
		return fmt.Errorf("error loading conversation: %w", err)
	}

	messages, err := st.Messages(ctx, conv.ID)
	if err != nil {
		return fmt.Errorf("error loading messages: %w", err)
	}

	markdown, err := export.Render(conv, messages)
	if err != nil {
		return fmt.Errorf("error rendering transcript: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(markdown)
		return nil
	}

	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		// Fall back to the raw markdown rather than failing the command.
		fmt.Print(markdown)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
