// Package render turns plans and grocery lists into their output formats.
package render

import (
	"fmt"
	"sort"
	"strings"

	"mealplanner/internal/planner"
)

// PlanMarkdown renders a plan as the weekly Markdown overview.
func PlanMarkdown(plan *planner.Plan) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("# Meal Plan — Week of %s", plan.WeekStartDate), "")

	for _, day := range plan.Days {
		lines = append(lines, fmt.Sprintf("## %s (%s)", day.DayName, day.Date))
		for _, meal := range day.Meals {
			lines = append(lines, mealLine(meal))
		}
		lines = append(lines, "")
	}

	if len(plan.Summary.YieldedPrepItems) > 0 {
		lines = append(lines, "## Meal Prep Summary")
		prepItems := make([]string, 0, len(plan.Summary.YieldedPrepItems))
		for item := range plan.Summary.YieldedPrepItems {
			prepItems = append(prepItems, item)
		}
		sort.Strings(prepItems)
		for _, item := range prepItems {
			sources := uniqueSorted(plan.Summary.YieldedPrepItems[item])
			lines = append(lines, fmt.Sprintf("- %s: made in %s", item, strings.Join(sources, ", ")))
		}
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func mealLine(meal planner.PlanMeal) string {
	mealType := titleCase(meal.MealType)
	if meal.IsLeftover {
		source := ""
		if meal.LeftoverSourceName != nil {
			source = *meal.LeftoverSourceName
		}
		return fmt.Sprintf("- **%s:** Leftovers — %s", mealType, source)
	}
	if meal.RecipeName == nil {
		return fmt.Sprintf("- **%s:** (skipped)", mealType)
	}
	if meal.TotalTimeMin != nil {
		return fmt.Sprintf("- **%s:** %s (%.0f min total)", mealType, *meal.RecipeName, *meal.TotalTimeMin)
	}
	return fmt.Sprintf("- **%s:** %s", mealType, *meal.RecipeName)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// titleCase capitalizes each space-separated word, matching the category
// headings of the grocery Markdown.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
