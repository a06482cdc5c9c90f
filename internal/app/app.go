// Package app wires the loaders, the planning engine and the renderers into
// the operations exposed by the CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"mealplanner/internal/archive"
	"mealplanner/internal/config"
	"mealplanner/internal/groceries"
	"mealplanner/internal/history"
	"mealplanner/internal/planner"
	"mealplanner/internal/recipe"
	"mealplanner/internal/render"
)

// App holds the application's dependencies.
type App struct {
	log *logrus.Logger
}

// New creates an App logging through the given logger.
func New(log *logrus.Logger) *App {
	return &App{log: log}
}

// PlanOptions are the inputs and outputs of the plan operation.
type PlanOptions struct {
	RecipesPath string
	ConfigPath  string
	HistoryPath string
	ArchivePath string
	OutMarkdown string
	OutJSON     string
	Seed        *int64
}

// Plan generates a weekly meal plan and writes its JSON and Markdown
// outputs. History and archive updates happen only after both outputs were
// written, so a failed run leaves nothing behind.
func (a *App) Plan(ctx context.Context, opts PlanOptions) error {
	recipes, err := recipe.Load(opts.RecipesPath)
	if err != nil {
		return err
	}
	a.log.WithField("count", len(recipes)).Debug("loaded recipe catalog")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	var store *history.Store
	var past history.Map
	if opts.HistoryPath != "" {
		store = history.NewStore(opts.HistoryPath)
		past, err = store.Load()
		if err != nil {
			return err
		}
		a.log.WithField("weeks", len(past)).Debug("loaded plan history")
	}

	plan := planner.Generate(recipes, cfg, past, opts.Seed)

	if err := writeJSONFile(opts.OutJSON, plan); err != nil {
		return err
	}
	if err := writeTextFile(opts.OutMarkdown, render.PlanMarkdown(plan)); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"json":     opts.OutJSON,
		"markdown": opts.OutMarkdown,
	}).Info("plan written")

	if store != nil {
		if err := store.Record(plan, cfg); err != nil {
			return err
		}
	}
	if opts.ArchivePath != "" {
		if err := a.archivePlan(ctx, opts.ArchivePath, plan); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) archivePlan(ctx context.Context, path string, plan *planner.Plan) error {
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, plan); err != nil {
		return err
	}
	a.log.WithField("archive", path).Debug("plan archived")
	return nil
}

// GroceriesOptions are the inputs and outputs of the groceries operation.
type GroceriesOptions struct {
	RecipesPath string
	PlanPath    string
	ConfigPath  string
	OutCSV      string
	OutMarkdown string
	PrintTable  bool
	Stdout      io.Writer
}

// Groceries derives the grocery outputs from an existing plan file.
func (a *App) Groceries(_ context.Context, opts GroceriesOptions) error {
	recipes, err := recipe.Load(opts.RecipesPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	plan, err := ReadPlanFile(opts.PlanPath)
	if err != nil {
		return err
	}

	items := groceries.Aggregate(plan, recipes, cfg)
	a.log.WithField("items", len(items)).Debug("aggregated grocery list")

	csvOut, err := render.GroceryCSV(items)
	if err != nil {
		return err
	}
	if err := writeTextFile(opts.OutCSV, csvOut); err != nil {
		return err
	}
	if err := writeTextFile(opts.OutMarkdown, render.GroceryMarkdown(items)); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"csv":      opts.OutCSV,
		"markdown": opts.OutMarkdown,
	}).Info("grocery list written")

	if opts.PrintTable && opts.Stdout != nil {
		fmt.Fprintln(opts.Stdout, render.GroceryTable(items))
	}
	return nil
}

// ImportOptions are the inputs of the recipe import operation.
type ImportOptions struct {
	InputDir  string
	OutputDir string
}

// Stats prints the archive's most-scheduled recipes as a table.
func (a *App) Stats(ctx context.Context, archivePath string, limit int, out io.Writer) error {
	store, err := archive.Open(archivePath)
	if err != nil {
		return err
	}
	defer store.Close()

	usage, err := store.TopRecipes(ctx, limit)
	if err != nil {
		return err
	}
	count, err := store.PlanCount(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d archived plans\n", count)
	fmt.Fprintln(out, render.UsageTable(usage))
	return nil
}
