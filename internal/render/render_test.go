package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/groceries"
	"mealplanner/internal/planner"
)

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func samplePlan() *planner.Plan {
	return &planner.Plan{
		WeekStartDate: "2025-01-12",
		Days: []planner.PlanDay{
			{DayName: "Sunday", Date: "2025-01-12", Meals: []planner.PlanMeal{
				{MealType: "breakfast", RecipeID: strPtr("toast"), RecipeName: strPtr("Toast"), TotalTimeMin: numPtr(7)},
				{MealType: "lunch"},
				{MealType: "dinner", RecipeID: strPtr("pasta"), RecipeName: strPtr("Pasta"), TotalTimeMin: numPtr(30)},
				{MealType: "snack"},
			}},
			{DayName: "Monday", Date: "2025-01-13", Meals: []planner.PlanMeal{
				{MealType: "breakfast"},
				{MealType: "lunch", RecipeName: strPtr("Pasta"), IsLeftover: true, LeftoverSourceID: strPtr("pasta"), LeftoverSourceName: strPtr("Pasta")},
				{MealType: "dinner"},
				{MealType: "snack"},
			}},
		},
		Summary: planner.Summary{YieldedPrepItems: map[string][]string{
			"soup_stock": {"Soup", "Soup"},
			"veggies":    {"Stir Fry"},
		}},
	}
}

func TestPlanMarkdown(t *testing.T) {
	md := PlanMarkdown(samplePlan())

	assert.True(t, strings.HasPrefix(md, "# Meal Plan — Week of 2025-01-12\n"))
	assert.Contains(t, md, "## Sunday (2025-01-12)")
	assert.Contains(t, md, "- **Breakfast:** Toast (7 min total)")
	assert.Contains(t, md, "- **Lunch:** (skipped)")
	assert.Contains(t, md, "- **Dinner:** Pasta (30 min total)")
	assert.Contains(t, md, "## Monday (2025-01-13)")
	assert.Contains(t, md, "- **Lunch:** Leftovers — Pasta")

	// Summary comes last, prep items sorted, recipe names de-duplicated.
	summaryIndex := strings.Index(md, "## Meal Prep Summary")
	require.Greater(t, summaryIndex, 0)
	assert.Contains(t, md, "- soup_stock: made in Soup")
	assert.NotContains(t, md, "Soup, Soup")
	assert.Contains(t, md, "- veggies: made in Stir Fry")
	assert.Less(t, strings.Index(md, "- soup_stock"), strings.Index(md, "- veggies"))
	assert.True(t, strings.HasSuffix(md, "\n"))
	assert.False(t, strings.HasSuffix(md, "\n\n"))
}

func TestPlanMarkdownNoSummary(t *testing.T) {
	plan := samplePlan()
	plan.Summary = planner.Summary{YieldedPrepItems: map[string][]string{}}

	md := PlanMarkdown(plan)
	assert.NotContains(t, md, "Meal Prep Summary")
}

func sampleItems() []groceries.Item {
	return []groceries.Item{
		{Item: "pasta", Quantity: 800, Unit: "g", Category: "grains", Sources: []string{"Sunday Dinner", "Monday Dinner"}},
		{Item: "tomato sauce", Quantity: 4, Unit: "jar", Category: "pantry", Sources: []string{"Sunday Dinner"}},
		{Item: "basil", Quantity: 0.5, Unit: "", Category: "produce", Sources: []string{"Sunday Dinner"}},
	}
}

func TestGroceryCSV(t *testing.T) {
	out, err := GroceryCSV(sampleItems())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "item,quantity,unit,category,sources", lines[0])
	assert.Equal(t, "pasta,800.00,g,grains,Sunday Dinner; Monday Dinner", lines[1])
	assert.Equal(t, "tomato sauce,4.00,jar,pantry,Sunday Dinner", lines[2])
	assert.Equal(t, "basil,0.50,,produce,Sunday Dinner", lines[3])
}

func TestGroceryMarkdown(t *testing.T) {
	md := GroceryMarkdown(sampleItems())

	assert.True(t, strings.HasPrefix(md, "# Grocery List\n"))

	// Categories are title-cased and sorted.
	grains := strings.Index(md, "## Grains")
	pantry := strings.Index(md, "## Pantry")
	produce := strings.Index(md, "## Produce")
	require.Greater(t, grains, 0)
	assert.Less(t, grains, pantry)
	assert.Less(t, pantry, produce)

	// Trailing zeros are trimmed from quantities.
	assert.Contains(t, md, "- pasta — 800 g")
	assert.Contains(t, md, "- tomato sauce — 4 jar")
	assert.Contains(t, md, "- basil — 0.5")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestGroceryTable(t *testing.T) {
	out := GroceryTable(sampleItems())

	assert.Contains(t, out, "pasta")
	assert.Contains(t, out, "800")
	assert.Contains(t, out, "grains")
}

func TestTrimQuantity(t *testing.T) {
	cases := map[float64]string{
		800:   "800",
		0.5:   "0.5",
		1.25:  "1.25",
		0:     "0",
		0.001: "0",
	}
	for quantity, want := range cases {
		assert.Equal(t, want, trimQuantity(quantity), "quantity %v", quantity)
	}
}
