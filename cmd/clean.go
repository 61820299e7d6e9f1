package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/snapshot"
	"github.com/recallhq/recall/internal/store"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files, prune orphaned snapshots, and compact the database",
	Long: `Removes debug log files, deletes cached snapshots whose conversation no
longer exists in the store, and vacuums the database when using sqlite.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	conversations, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing conversations: %w", err)
	}
	known := make(map[string]bool, len(conversations))
	for _, c := range conversations {
		known[c.ID] = true
	}

	snapshots := snapshot.Open(cfg.GetSnapshotDir())
	var orphaned []string
	for _, id := range snapshots.IDs(nil) {
		if !known[id] {
			orphaned = append(orphaned, id)
		}
	}

	fmt.Println("This will clean:")
	if len(orphaned) > 0 {
		fmt.Printf("  - %d orphaned snapshot(s)\n", len(orphaned))
	}
	fmt.Printf("  - Log files at %s\n", logger.DefaultLogPath)
	if cfg.GetDatabaseDriver() == "sqlite" {
		fmt.Println("  - Unused space in the database (vacuum)")
	}

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	pruned := 0
	for _, id := range orphaned {
		if err := snapshots.Remove(id); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error removing snapshot %s: %v\n", id, err)
			continue
		}
		pruned++
	}

	vacuumed := false
	if sq, ok := st.(*store.SQLite); ok {
		if err := sq.Vacuum(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error vacuuming database: %v\n", err)
		} else {
			vacuumed = true
		}
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}
	if pruned > 0 {
		fmt.Printf("  - %d orphaned snapshot(s) pruned\n", pruned)
	}
	if vacuumed {
		fmt.Println("  - Database vacuumed")
	}
	if logsCleared == 0 && pruned == 0 && !vacuumed {
		fmt.Println("  - Nothing needed cleaning")
	}

	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
