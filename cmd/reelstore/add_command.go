package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"reelstore/internal/ingest"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   `add "<title (year)>" [more titles...]`,
		Short: "Look up titles on TMDB and add them to the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withImporter("", func(importer *ingest.Importer, _ *slog.Logger) error {
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					movie, existed, err := importer.AddMovie(cmd.Context(), args[0])
					if err != nil {
						return fmt.Errorf("add %q: %w", args[0], err)
					}
					if existed {
						fmt.Fprintf(out, "Already in catalog: %s\n", movie.Summary())
					} else {
						fmt.Fprintf(out, "Added %s\n", movie.Summary())
					}
					return nil
				}

				items := make([]ingest.Request, 0, len(args))
				for _, label := range args {
					items = append(items, ingest.Request{TitleYear: label})
				}
				stats, err := importer.Run(cmd.Context(), items)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderStats(stats))
				if stats.Imported == 0 && stats.Skipped == 0 {
					return fmt.Errorf("no titles could be added (%d errors)", stats.Errors)
				}
				return nil
			})
		},
	}
}
