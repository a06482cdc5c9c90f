// Package history tracks which recipes were scheduled in past weeks so the
// planner can avoid repeating them.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mealplanner/internal/config"
	"mealplanner/internal/planner"
)

// Map relates a week start date (ISO form) to the recipe ids used that week.
type Map map[string][]string

// Store persists plan history to a JSON file.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given file path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// historyFile is the canonical on-disk shape.
type historyFile struct {
	Plans Map `json:"plans"`
}

// legacyEntry is the record shape of the older list-based history files.
type legacyEntry struct {
	WeekStartDate string   `json:"week_start_date"`
	Recipes       []string `json:"recipes"`
}

// Load reads the history file, accepting the canonical {"plans": {...}}
// form, a bare week-keyed mapping, or the legacy list of records. A missing
// file yields a nil map without error.
func (s *Store) Load() (Map, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var wrapped historyFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Plans != nil {
		return wrapped.Plans, nil
	}

	var mapping Map
	if err := json.Unmarshal(data, &mapping); err == nil && mapping != nil {
		return mapping, nil
	}

	var entries []legacyEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		result := make(Map, len(entries))
		for _, entry := range entries {
			if entry.WeekStartDate == "" {
				continue
			}
			result[entry.WeekStartDate] = entry.Recipes
		}
		return result, nil
	}

	return nil, fmt.Errorf("parse history file %s: unrecognized format", s.path)
}

// Record folds a generated plan into the history, overwriting the entry for
// its week and pruning entries outside the retention window. The file is
// always written back in the canonical form.
func (s *Store) Record(plan *planner.Plan, cfg *config.WeekConfig) error {
	history, err := s.Load()
	if err != nil {
		return err
	}
	if history == nil {
		history = make(Map)
	}

	weekStart := plan.WeekStartDate
	if weekStart == "" {
		weekStart = cfg.WeekStartDate.Format("2006-01-02")
	}
	history[weekStart] = plan.ScheduledRecipeIDs()

	if cfg.VariabilityWindowWeeks > 0 {
		prune(history, cfg.VariabilityWindowWeeks)
	}

	payload, err := json.MarshalIndent(historyFile{Plans: history}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	if err := os.WriteFile(s.path, append(payload, '\n'), 0644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// prune keeps only the most recent keep entries ordered by week key.
func prune(history Map, keep int) {
	if len(history) <= keep {
		return
	}
	weeks := make([]string, 0, len(history))
	for week := range history {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	for _, week := range weeks[:len(weeks)-keep] {
		delete(history, week)
	}
}
