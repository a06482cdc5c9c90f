// Package groceries derives an aggregated shopping list from a generated
// meal plan and the recipe catalog.
package groceries

import (
	"fmt"
	"sort"
	"strings"

	"mealplanner/internal/config"
	"mealplanner/internal/planner"
	"mealplanner/internal/recipe"
)

// Item is a single aggregated grocery line, keyed by item name and unit so
// the same ingredient in different units stays separate.
type Item struct {
	Item     string
	Quantity float64
	Unit     string
	Category string
	Sources  []string
}

type bucketKey struct {
	item string
	unit string
}

// Aggregate walks every filled slot of the plan and accumulates ingredient
// quantities scaled to the configured number of people. Leftover slots
// contribute nothing: their ingredients were counted on the day the batch
// was cooked. Slots referencing recipes no longer in the catalog are
// skipped.
func Aggregate(plan *planner.Plan, recipes []recipe.Recipe, cfg *config.WeekConfig) []Item {
	lookup := recipe.Lookup(recipes)
	pantry := cfg.PantrySet()
	buckets := make(map[bucketKey]*Item)

	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			if meal.RecipeID == nil {
				continue
			}
			r, ok := lookup[*meal.RecipeID]
			if !ok {
				continue
			}

			multiplier := 1.0
			if r.ServingsPerRecipe != 0 {
				multiplier = float64(cfg.People) / r.ServingsPerRecipe
			}
			source := mealDescription(day, meal)

			for _, ing := range r.Ingredients {
				itemKey := strings.ToLower(ing.Item)
				if pantry[itemKey] {
					continue
				}
				key := bucketKey{item: itemKey, unit: ing.Unit}
				bucket, exists := buckets[key]
				if !exists {
					bucket = &Item{
						Item:     ing.Item,
						Unit:     ing.Unit,
						Category: ing.Category,
					}
					buckets[key] = bucket
				}
				bucket.Quantity += ing.Qty * multiplier
				bucket.Sources = append(bucket.Sources, source)
			}
		}
	}

	items := make([]Item, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, *bucket)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Item < items[j].Item
	})
	return items
}

func mealDescription(day planner.PlanDay, meal planner.PlanMeal) string {
	return fmt.Sprintf("%s %s", day.DayName, titleCase(meal.MealType))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
