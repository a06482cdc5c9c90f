package main

import (
	"github.com/spf13/cobra"

	"mealplanner/internal/app"
)

func newRecipesCommand(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage the recipe catalog",
	}

	var outDir string
	importCmd := &cobra.Command{
		Use:   "import <input-dir>",
		Short: "Import recipes from saved web pages into catalog JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.ImportRecipes(app.ImportOptions{
				InputDir:  args[0],
				OutputDir: outDir,
			})
		},
	}
	importCmd.Flags().StringVar(&outDir, "out", "", "Directory for imported recipe files")
	_ = importCmd.MarkFlagRequired("out")

	cmd.AddCommand(importCmd)
	return cmd
}
