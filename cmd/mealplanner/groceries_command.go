package main

import (
	"github.com/spf13/cobra"

	"mealplanner/internal/app"
)

func newGroceriesCommand(application *app.App) *cobra.Command {
	var opts app.GroceriesOptions

	cmd := &cobra.Command{
		Use:   "groceries",
		Short: "Generate grocery outputs from an existing meal plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Stdout = cmd.OutOrStdout()
			return application.Groceries(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RecipesPath, "recipes", "", "Recipe file or directory")
	cmd.Flags().StringVar(&opts.PlanPath, "plan", "", "Plan JSON file to aggregate")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Week configuration file")
	cmd.Flags().StringVar(&opts.OutCSV, "out-csv", "", "CSV output path")
	cmd.Flags().StringVar(&opts.OutMarkdown, "out-md", "", "Markdown output path")
	cmd.Flags().BoolVar(&opts.PrintTable, "print-table", false, "Also print the grocery table to stdout")
	_ = cmd.MarkFlagRequired("recipes")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("out-csv")
	_ = cmd.MarkFlagRequired("out-md")

	return cmd
}
