package planner

import (
	"math/rand"
	"sort"
	"time"

	"mealplanner/internal/config"
	"mealplanner/internal/recipe"
)

// HighEffortThresholdMin caps dinner total time on days where high-effort
// dinners are disallowed.
const HighEffortThresholdMin = 30

// leftoverRef marks a slot that must be filled with leftovers from an
// earlier dinner instead of a freshly chosen recipe.
type leftoverRef struct {
	sourceID   string
	sourceName string
}

// Generate builds a seven-day plan from the catalog, the week configuration
// and the rolling history. A nil seed selects with an unseeded source; the
// same seed and inputs always reproduce the same plan.
func Generate(recipes []recipe.Recipe, cfg *config.WeekConfig, history map[string][]string, seed *int64) *Plan {
	rng := newRand(seed)
	recent := recentRecipes(history, cfg)
	lookup := recipe.Lookup(recipes)

	// Leftovers scheduled by one day for the next, keyed day index -> slot.
	pending := make(map[int]map[string]leftoverRef)

	days := make([]PlanDay, 0, len(recipe.DayNames))
	for dayIndex, dayName := range recipe.DayNames {
		date := cfg.DayDate(dayName).Format("2006-01-02")
		day := PlanDay{DayName: dayName, Date: date}

		skip := cfg.SkipSet(dayName)
		carried := pending[dayIndex]

		for _, meal := range recipe.MealTypes {
			// Leftover precedence comes before the skip rule: the batch was
			// already cooked, so the slot is filled either way.
			if ref, ok := carried[meal]; ok {
				day.Meals = append(day.Meals, leftoverMeal(meal, ref))
				continue
			}
			if skip[meal] {
				day.Meals = append(day.Meals, emptyMeal(meal))
				continue
			}

			candidates := recipesForMeal(recipes, meal)
			if meal == "dinner" && !cfg.AllowsHighEffortDinner(dayName) {
				candidates = filterByTimeLimit(candidates, HighEffortThresholdMin)
			}
			candidates = avoidRecent(candidates, recent)

			chosen := chooseRecipe(candidates, rng)
			if chosen == nil {
				day.Meals = append(day.Meals, emptyMeal(meal))
				continue
			}

			day.Meals = append(day.Meals, scheduledMeal(meal, *chosen))

			if chosen.ProducesLeftovers && recipe.IsMealType(chosen.LeftoversReplaceMeal) && dayIndex+1 < len(recipe.DayNames) {
				next := dayIndex + 1
				if pending[next] == nil {
					pending[next] = make(map[string]leftoverRef)
				}
				pending[next][chosen.LeftoversReplaceMeal] = leftoverRef{
					sourceID:   chosen.ID,
					sourceName: chosen.Name,
				}
			}
		}

		days = append(days, day)
	}

	plan := &Plan{
		WeekStartDate: cfg.WeekStartDate.Format("2006-01-02"),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Seed:          seed,
		Days:          days,
		Metadata: Metadata{
			People:                 cfg.People,
			VariabilityWindowWeeks: cfg.VariabilityWindowWeeks,
			RecentRecipes:          sortedIDs(recent),
		},
	}
	plan.Summary = buildSummary(plan, lookup)
	return plan
}

func newRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}

// recentRecipes collects recipe ids forbidden by the recency policy. A zero
// window forbids every historical recipe; a positive window forbids only
// weeks within the last N whole weeks. Malformed week keys are skipped.
func recentRecipes(history map[string][]string, cfg *config.WeekConfig) map[string]bool {
	forbidden := make(map[string]bool)
	if len(history) == 0 {
		return forbidden
	}

	window := cfg.VariabilityWindowWeeks
	for entryWeek, recipeIDs := range history {
		entryDate, err := time.Parse("2006-01-02", entryWeek)
		if err != nil {
			continue
		}
		if window <= 0 {
			for _, id := range recipeIDs {
				forbidden[id] = true
			}
			continue
		}
		deltaWeeks := int(cfg.WeekStartDate.Sub(entryDate).Hours()/24) / 7
		if deltaWeeks > 0 && deltaWeeks <= window {
			for _, id := range recipeIDs {
				forbidden[id] = true
			}
		}
	}
	return forbidden
}

func recipesForMeal(recipes []recipe.Recipe, meal string) []recipe.Recipe {
	var matched []recipe.Recipe
	for _, r := range recipes {
		if r.ServesMeal(meal) {
			matched = append(matched, r)
		}
	}
	return matched
}

func filterByTimeLimit(recipes []recipe.Recipe, limitMinutes float64) []recipe.Recipe {
	var within []recipe.Recipe
	for _, r := range recipes {
		if r.TotalTimeMin() <= limitMinutes {
			within = append(within, r)
		}
	}
	return within
}

// avoidRecent removes recently used recipes, unless doing so would leave no
// candidates at all. The fallback keeps a constrained week fillable.
func avoidRecent(recipes []recipe.Recipe, forbidden map[string]bool) []recipe.Recipe {
	var remaining []recipe.Recipe
	for _, r := range recipes {
		if !forbidden[r.ID] {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) == 0 {
		return recipes
	}
	return remaining
}

func chooseRecipe(recipes []recipe.Recipe, rng *rand.Rand) *recipe.Recipe {
	if len(recipes) == 0 {
		return nil
	}
	chosen := recipes[rng.Intn(len(recipes))]
	return &chosen
}

func emptyMeal(meal string) PlanMeal {
	return PlanMeal{MealType: meal}
}

func leftoverMeal(meal string, ref leftoverRef) PlanMeal {
	sourceID := ref.sourceID
	sourceName := ref.sourceName
	return PlanMeal{
		MealType:           meal,
		RecipeName:         &sourceName,
		IsLeftover:         true,
		LeftoverSourceID:   &sourceID,
		LeftoverSourceName: &sourceName,
	}
}

func scheduledMeal(meal string, r recipe.Recipe) PlanMeal {
	id := r.ID
	name := r.Name
	total := r.TotalTimeMin()
	return PlanMeal{
		MealType:     meal,
		RecipeID:     &id,
		RecipeName:   &name,
		TotalTimeMin: &total,
	}
}

// buildSummary groups the week's freshly cooked recipes by the prep items
// they yield.
func buildSummary(plan *Plan, lookup map[string]recipe.Recipe) Summary {
	yielded := make(map[string][]string)
	for _, day := range plan.Days {
		for _, meal := range day.Meals {
			if meal.RecipeID == nil {
				continue
			}
			r, ok := lookup[*meal.RecipeID]
			if !ok {
				continue
			}
			for _, prepItem := range r.YieldsPrepItem {
				yielded[prepItem] = append(yielded[prepItem], r.Name)
			}
		}
	}
	return Summary{YieldedPrepItems: yielded}
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
