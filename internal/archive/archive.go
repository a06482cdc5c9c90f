// Package archive keeps a local SQLite record of every generated plan so
// recipe usage can be inspected across weeks.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mealplanner/internal/planner"
)

// Store manages plan archive persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    week_start_date TEXT NOT NULL,
    seed INTEGER,
    generated_at TEXT NOT NULL,
    plan_json TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scheduled_recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plan_id INTEGER NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    recipe_id TEXT NOT NULL,
    recipe_name TEXT NOT NULL,
    day_name TEXT NOT NULL,
    meal_type TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scheduled_recipes_recipe_id
    ON scheduled_recipes(recipe_id);
`

// Open initializes or connects to the archive database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one row for the plan and one per freshly scheduled meal.
func (s *Store) Record(ctx context.Context, plan *planner.Plan) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seed sql.NullInt64
	if plan.Seed != nil {
		seed = sql.NullInt64{Int64: *plan.Seed, Valid: true}
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO plans (week_start_date, seed, generated_at, plan_json)
         VALUES (?, ?, ?, ?)`,
		plan.WeekStartDate,
		seed,
		plan.GeneratedAt,
		string(planJSON),
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	planID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			if meal.RecipeID == nil {
				continue
			}
			name := ""
			if meal.RecipeName != nil {
				name = *meal.RecipeName
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO scheduled_recipes (plan_id, recipe_id, recipe_name, day_name, meal_type)
                 VALUES (?, ?, ?, ?, ?)`,
				planID, *meal.RecipeID, name, day.DayName, meal.MealType,
			); err != nil {
				return fmt.Errorf("insert scheduled recipe: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

// RecipeUsage is an aggregate row of the archive's usage statistics.
type RecipeUsage struct {
	RecipeID   string
	RecipeName string
	TimesUsed  int
}

// TopRecipes returns the most frequently scheduled recipes across all
// archived plans, most used first.
func (s *Store) TopRecipes(ctx context.Context, limit int) ([]RecipeUsage, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT recipe_id, recipe_name, COUNT(*) AS times_used
         FROM scheduled_recipes
         GROUP BY recipe_id, recipe_name
         ORDER BY times_used DESC, recipe_id ASC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top recipes: %w", err)
	}
	defer rows.Close()

	var usage []RecipeUsage
	for rows.Next() {
		var row RecipeUsage
		if err := rows.Scan(&row.RecipeID, &row.RecipeName, &row.TimesUsed); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		usage = append(usage, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return usage, nil
}

// PlanCount reports how many plans the archive holds.
func (s *Store) PlanCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count plans: %w", err)
	}
	return count, nil
}
