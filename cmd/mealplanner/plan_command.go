package main

import (
	"github.com/spf13/cobra"

	"mealplanner/internal/app"
)

func newPlanCommand(application *app.App) *cobra.Command {
	var opts app.PlanOptions
	var seed int64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a meal plan for the configured week",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			return application.Plan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RecipesPath, "recipes", "", "Recipe file or directory")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Week configuration file")
	cmd.Flags().StringVar(&opts.HistoryPath, "history", "", "History file to consult and update")
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "SQLite archive to record the plan in")
	cmd.Flags().StringVar(&opts.OutMarkdown, "out-md", "", "Markdown output path")
	cmd.Flags().StringVar(&opts.OutJSON, "out-json", "", "JSON output path")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible selection")
	_ = cmd.MarkFlagRequired("recipes")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("out-md")
	_ = cmd.MarkFlagRequired("out-json")

	return cmd
}
