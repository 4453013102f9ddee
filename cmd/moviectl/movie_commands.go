package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviecatalog/errs"
	"moviecatalog/movie"
)

func newListCommand(ctx *commandContext, jsonOutput *bool) *cobra.Command {
	var years, categories []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd.Context(), func(svc movie.Service) error {
				catalog, err := svc.ListMovies(cmd.Context(), movie.NewSelection(years, categories))
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd, catalog)
				}

				fmt.Fprintln(cmd.OutOrStdout(), catalog.Title)
				if len(catalog.Movies) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(catalog.Movies))
				for _, m := range catalog.Movies {
					rows = append(rows, []string{m.ID, m.Name, m.Year, strings.Join(m.Categories, ", ")})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Year", "Categories"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&years, "year", "y", nil, "Only movies from these years")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only movies in any of these categories")
	return cmd
}

func newShowCommand(ctx *commandContext, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd.Context(), func(svc movie.Service) error {
				m, err := svc.GetMovie(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd, m)
				}
				printMovie(cmd, m)
				return nil
			})
		},
	}
}

func newAddCommand(ctx *commandContext, jsonOutput *bool) *cobra.Command {
	var draft movie.Draft

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.Name = strings.TrimSpace(args[0])
			draft.Categories = movie.NormalizeValues(draft.Categories)
			for _, c := range draft.Categories {
				if !movie.IsCategory(c) {
					return errs.Errorf(errs.EINVALID, "unknown category %q", c)
				}
			}

			return ctx.withService(cmd.Context(), func(svc movie.Service) error {
				m, err := svc.AddMovie(cmd.Context(), draft)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd, m)
				}
				fmt.Fprintln(cmd.OutOrStdout(), movie.TitleAdded)
				printMovie(cmd, m)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&draft.Year, "year", "y", "", "Release year")
	cmd.Flags().StringSliceVarP(&draft.Categories, "category", "c", nil, "Categories, repeat or comma separate")
	cmd.Flags().StringVarP(&draft.Storyline, "storyline", "s", "", "Short storyline")
	return cmd
}

func printMovie(cmd *cobra.Command, m movie.Movie) {
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"ID", m.ID},
			{"Name", m.Name},
			{"Slug", m.Slug},
			{"Year", m.Year},
			{"Categories", strings.Join(m.Categories, ", ")},
			{"Storyline", m.Storyline},
		},
		nil,
	))
}
