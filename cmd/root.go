package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/app"
	"github.com/recallhq/recall/internal/config"
	"github.com/recallhq/recall/internal/history"
	"github.com/recallhq/recall/internal/logger"
	"github.com/recallhq/recall/internal/snapshot"
	"github.com/recallhq/recall/internal/store"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Terminal browser for your chat history",
	Long: `Recall is a terminal application for browsing, searching, and managing
past chat conversations. Conversations live in a local database and can be
renamed, duplicated, exported, and deleted individually or in bulk.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging (verbose output to /tmp/recall-debug.log)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	// Optional .env for OPENAI_API_KEY and friends; absence is fine.
	_ = godotenv.Load()

	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("recall %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("recall %s\n", version)
}

// openStore loads the config and opens the configured conversation store.
// The caller owns the returned store and must Close it.
func openStore() (*config.Config, history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}

	st, err := store.Open(cfg.GetDatabaseDriver(), cfg.GetDatabaseDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("error opening conversation store: %w", err)
	}
	return cfg, st, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snapshots := snapshot.Open(cfg.GetSnapshotDir())

	// Ensure logger is closed on exit
	defer logger.Close()

	m := app.New(cfg, version, st, snapshots)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
