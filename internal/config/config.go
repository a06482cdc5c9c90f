package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mealplanner/internal/recipe"
)

// DefaultPeople is assumed when a config does not say how many people the
// week is cooked for.
const DefaultPeople = 2

// WeekConfig holds the preferences for a single planning week.
type WeekConfig struct {
	WeekStartDate          time.Time
	People                 int
	VariabilityWindowWeeks int
	AllowHighEffortDinner  map[string]bool
	SkipMeals              map[string][]string
	EnableMealPrepSunday   bool
	MealPrepMaxMinutes     *int
	PreferredPrepItems     []string
	Pantry                 []string
}

// rawConfig matches the on-disk configuration document.
type rawConfig struct {
	WeekStartDate          string              `json:"week_start_date" yaml:"week_start_date"`
	People                 int                 `json:"people" yaml:"people"`
	VariabilityWindowWeeks int                 `json:"variability_window_weeks" yaml:"variability_window_weeks"`
	AllowHighEffortDinner  map[string]bool     `json:"allow_high_effort_dinner" yaml:"allow_high_effort_dinner"`
	SkipMeals              map[string][]string `json:"skip_meals" yaml:"skip_meals"`
	EnableMealPrepSunday   bool                `json:"enable_meal_prep_sunday" yaml:"enable_meal_prep_sunday"`
	MealPrepMaxMinutes     *int                `json:"meal_prep_max_minutes" yaml:"meal_prep_max_minutes"`
	PreferredPrepItems     []string            `json:"preferred_prep_items" yaml:"preferred_prep_items"`
	Pantry                 []string            `json:"pantry" yaml:"pantry"`
	PantryFile             string              `json:"pantry_file" yaml:"pantry_file"`
}

// Load reads a week configuration from a JSON or YAML file and resolves the
// optional pantry file relative to it.
func Load(path string) (*WeekConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	pantry := append([]string{}, raw.Pantry...)
	if raw.PantryFile != "" {
		pantryPath := raw.PantryFile
		if !filepath.IsAbs(pantryPath) {
			pantryPath = filepath.Join(filepath.Dir(path), pantryPath)
		}
		fromFile, err := loadPantryFile(pantryPath)
		if err != nil {
			return nil, err
		}
		pantry = append(pantry, fromFile...)
	}

	return build(raw, pantry)
}

// build turns a decoded document into a validated WeekConfig. Day keys that
// are not canonical day names are dropped rather than rejected.
func build(raw rawConfig, pantry []string) (*WeekConfig, error) {
	weekStart, err := time.Parse("2006-01-02", raw.WeekStartDate)
	if err != nil {
		return nil, fmt.Errorf("parse week_start_date %q: %w", raw.WeekStartDate, err)
	}

	allowHighEffort := make(map[string]bool)
	for day, flag := range raw.AllowHighEffortDinner {
		if recipe.IsDayName(day) {
			allowHighEffort[day] = flag
		}
	}

	skipMeals := make(map[string][]string)
	for day, meals := range raw.SkipMeals {
		if !recipe.IsDayName(day) {
			continue
		}
		lowered := make([]string, 0, len(meals))
		for _, meal := range meals {
			lowered = append(lowered, strings.ToLower(meal))
		}
		skipMeals[day] = lowered
	}

	people := raw.People
	if people <= 0 {
		people = DefaultPeople
	}

	return &WeekConfig{
		WeekStartDate:          weekStart,
		People:                 people,
		VariabilityWindowWeeks: raw.VariabilityWindowWeeks,
		AllowHighEffortDinner:  allowHighEffort,
		SkipMeals:              skipMeals,
		EnableMealPrepSunday:   raw.EnableMealPrepSunday,
		MealPrepMaxMinutes:     raw.MealPrepMaxMinutes,
		PreferredPrepItems:     append([]string{}, raw.PreferredPrepItems...),
		Pantry:                 normalizePantry(pantry),
	}, nil
}

// loadPantryFile reads a pantry list stored as either a JSON array or a
// newline-delimited text file with #-comment lines.
func loadPantryFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pantry file: %w", err)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		item := strings.TrimSpace(line)
		if item == "" || strings.HasPrefix(item, "#") {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizePantry lower-cases and de-duplicates while keeping first-seen
// order.
func normalizePantry(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		lowered := strings.ToLower(strings.TrimSpace(item))
		if lowered == "" {
			continue
		}
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		out = append(out, lowered)
	}
	return out
}

// DayDate returns the calendar date of the named day within the week.
func (c *WeekConfig) DayDate(dayName string) time.Time {
	for i, name := range recipe.DayNames {
		if name == dayName {
			return c.WeekStartDate.AddDate(0, 0, i)
		}
	}
	return c.WeekStartDate
}

// AllowsHighEffortDinner reports whether the day permits dinners above the
// high-effort threshold. Days not present in the config default to false.
func (c *WeekConfig) AllowsHighEffortDinner(dayName string) bool {
	return c.AllowHighEffortDinner[dayName]
}

// SkipSet returns the meal slots configured to stay empty on the named day.
func (c *WeekConfig) SkipSet(dayName string) map[string]bool {
	set := make(map[string]bool)
	for _, meal := range c.SkipMeals[dayName] {
		set[meal] = true
	}
	return set
}

// PantrySet returns the pantry as a membership set.
func (c *WeekConfig) PantrySet() map[string]bool {
	set := make(map[string]bool, len(c.Pantry))
	for _, item := range c.Pantry {
		set[item] = true
	}
	return set
}
