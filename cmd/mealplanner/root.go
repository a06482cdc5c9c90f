package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mealplanner/internal/app"
)

func newRootCommand() *cobra.Command {
	var verbose bool

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	application := app.New(log)

	rootCmd := &cobra.Command{
		Use:           "mealplanner",
		Short:         "Generate weekly meal plans and grocery lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPlanCommand(application))
	rootCmd.AddCommand(newGroceriesCommand(application))
	rootCmd.AddCommand(newRecipesCommand(application))
	rootCmd.AddCommand(newStatsCommand(application))

	return rootCmd
}
