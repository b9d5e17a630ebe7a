package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelstore/internal/catalog"
	"reelstore/internal/config"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tmdb-id>",
		Short: "Show a stored movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid TMDB id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store, _ *slog.Logger) error {
				movie, err := store.MovieByTMDBID(cmd.Context(), tmdbID)
				if err != nil {
					return err
				}
				genres, err := store.GenreNames(cmd.Context(), movie.ID)
				if err != nil {
					return err
				}

				rows := [][]string{
					{"Title", movie.Title},
					{"Release date", movie.ReleaseDate},
					{"Runtime", fmt.Sprintf("%d min", movie.Runtime)},
					{"Status", movie.Status},
					{"Genres", strings.Join(genres, ", ")},
					{"Rating", fmt.Sprintf("%.1f (%d votes)", movie.VoteAverage, movie.VoteCount)},
					{"TMDB id", strconv.FormatInt(movie.TMDBID, 10)},
				}
				if movie.IMDBID != "" {
					rows = append(rows, []string{"IMDB id", movie.IMDBID})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
				return nil
			})
		},
	}
}
