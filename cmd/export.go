package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <slug>",
	Short: "Export a conversation transcript to a file",
	Long: `Writes a conversation transcript to the export directory (or --out) as
markdown with YAML front matter, or as JSON with --format json.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format: md or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Destination directory (defaults to the configured export dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var format export.Format
	switch exportFormat {
	case "md", "markdown":
		format = export.FormatMarkdown
	case "json":
		format = export.FormatJSON
	default:
		return fmt.Errorf("unknown format %q (want md or json)", exportFormat)
	}

	cfg, st, err := openStore()
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

	dir := exportOut
	if dir == "" {
		dir = cfg.GetExportDir()
	}

	path, err := export.NewWriter(dir).WriteAs(conv, messages, format)
	if err != nil {
		return fmt.Errorf("error writing export: %w", err)
	}

	fmt.Printf("Exported to %s\n", path)
	return nil
}
