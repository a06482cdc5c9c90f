package main

import (
	"github.com/spf13/cobra"

	"mealplanner/internal/app"
)

func newStatsCommand(application *app.App) *cobra.Command {
	var archivePath string
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the most frequently scheduled recipes from the plan archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.Stats(cmd.Context(), archivePath, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "SQLite plan archive")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of recipes to show")
	_ = cmd.MarkFlagRequired("archive")

	return cmd
}
