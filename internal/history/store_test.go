package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/config"
	"mealplanner/internal/planner"
)

func writeFile(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewStore(path)
}

func TestLoadFormats(t *testing.T) {
	t.Run("CanonicalForm", func(t *testing.T) {
		store := writeFile(t, `{"plans": {"2025-01-05": ["a", "b"]}}`)

		history, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Map{"2025-01-05": {"a", "b"}}, history)
	})

	t.Run("BareMapping", func(t *testing.T) {
		store := writeFile(t, `{"2025-01-05": ["a"]}`)

		history, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Map{"2025-01-05": {"a"}}, history)
	})

	t.Run("LegacyList", func(t *testing.T) {
		store := writeFile(t, `[{"week_start_date": "2025-01-05", "recipes": ["a", "b"]}, {"recipes": ["ignored"]}]`)

		history, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, Map{"2025-01-05": {"a", "b"}}, history)
	})

	t.Run("MissingFile", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "absent.json"))

		history, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, history)
	})

	t.Run("Garbage", func(t *testing.T) {
		store := writeFile(t, `"not a history"`)

		_, err := store.Load()
		assert.Error(t, err)
	})
}

func testPlan(week string, ids ...string) *planner.Plan {
	meals := make([]planner.PlanMeal, 0, len(ids))
	for i := range ids {
		id := ids[i]
		name := ids[i]
		meals = append(meals, planner.PlanMeal{MealType: "dinner", RecipeID: &id, RecipeName: &name})
	}
	return &planner.Plan{
		WeekStartDate: week,
		Days:          []planner.PlanDay{{DayName: "Sunday", Date: week, Meals: meals}},
	}
}

func testConfig(t *testing.T, window int) *config.WeekConfig {
	t.Helper()
	weekStart, err := time.Parse("2006-01-02", "2025-01-12")
	require.NoError(t, err)
	return &config.WeekConfig{WeekStartDate: weekStart, People: 2, VariabilityWindowWeeks: window}
}

func TestRecordWritesCanonicalForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	store := NewStore(path)

	require.NoError(t, store.Record(testPlan("2025-01-12", "a", "b"), testConfig(t, 4)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var wrapped struct {
		Plans Map `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(data, &wrapped))
	assert.Equal(t, Map{"2025-01-12": {"a", "b"}}, wrapped.Plans)
}

func TestRecordExcludesLeftoverSlots(t *testing.T) {
	plan := testPlan("2025-01-12", "a")
	source := "a"
	plan.Days[0].Meals = append(plan.Days[0].Meals, planner.PlanMeal{
		MealType:           "lunch",
		RecipeName:         &source,
		IsLeftover:         true,
		LeftoverSourceID:   &source,
		LeftoverSourceName: &source,
	})
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	require.NoError(t, store.Record(plan, testConfig(t, 4)))

	history, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, history["2025-01-12"])
}

func TestRecordPrunesOutsideWindow(t *testing.T) {
	store := writeFile(t, `{"plans": {
		"2024-12-01": ["old"],
		"2024-12-29": ["older"],
		"2025-01-05": ["recent"]
	}}`)

	require.NoError(t, store.Record(testPlan("2025-01-12", "new"), testConfig(t, 2)))

	history, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Contains(t, history, "2025-01-12")
	assert.Contains(t, history, "2025-01-05")
}

func TestRecordKeepsEverythingWithZeroWindow(t *testing.T) {
	store := writeFile(t, `{"plans": {"2020-01-05": ["ancient"]}}`)

	require.NoError(t, store.Record(testPlan("2025-01-12", "new"), testConfig(t, 0)))

	history, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
