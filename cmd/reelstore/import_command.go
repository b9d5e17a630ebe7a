package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"reelstore/internal/config"
	"reelstore/internal/ingest"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Import a Letterboxd-style JSON export with ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			items, err := ingest.ReadExportFile(path)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Export file contains no items")
				return nil
			}

			return ctx.withImporter(username, func(importer *ingest.Importer, _ *slog.Logger) error {
				stats, err := importer.Run(cmd.Context(), items)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStats(stats))
				if stats.Imported == 0 && stats.Skipped == 0 {
					return fmt.Errorf("no items could be imported (%d errors)", stats.Errors)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username owning the imported ratings")
	return cmd
}
