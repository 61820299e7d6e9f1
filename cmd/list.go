package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations without starting the TUI",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	conversations, err := st.List(context.Background())
	if err != nil {
		return fmt.Errorf("error listing conversations: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if len(conversations) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Println("No conversations yet. Run 'recall seed' to create some samples.")
		return nil
	}

	heading := color.New(color.Bold, color.Underline)
	_, _ = heading.Printf("Conversations - %d\n", len(conversations))

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("", "TITLE", "SLUG", "UPDATED")

	star := color.New(color.FgHiYellow)
	for _, c := range conversations {
		marker := ""
		if c.Starred {
			marker = star.Sprint("*")
		}
		table.AddRow(marker, c.Title, c.Slug, humanize.Time(c.UpdatedAt))
	}
	fmt.Println(table)
	return nil
}
