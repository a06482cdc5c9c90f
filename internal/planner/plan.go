package planner

// PlanMeal is one slot of a planned day. A nil RecipeID means the slot has
// no meal scheduled; a leftover slot keeps RecipeID nil and points at its
// source recipe instead.
type PlanMeal struct {
	MealType           string   `json:"meal_type"`
	RecipeID           *string  `json:"recipe_id"`
	RecipeName         *string  `json:"recipe_name"`
	TotalTimeMin       *float64 `json:"total_time_min"`
	IsLeftover         bool     `json:"is_leftover"`
	LeftoverSourceID   *string  `json:"leftover_source_id,omitempty"`
	LeftoverSourceName *string  `json:"leftover_source_name,omitempty"`
}

// PlanDay holds the four meal slots of a single day in fixed order.
type PlanDay struct {
	DayName string     `json:"day_name"`
	Date    string     `json:"date"`
	Meals   []PlanMeal `json:"meals"`
}

// Metadata records the inputs that shaped a plan.
type Metadata struct {
	People                 int      `json:"people"`
	VariabilityWindowWeeks int      `json:"variability_window_weeks"`
	RecentRecipes          []string `json:"recent_recipes"`
}

// Summary maps each batch-cooked prep item to the recipes that yielded it
// during the week. Duplicates are preserved; renderers de-duplicate.
type Summary struct {
	YieldedPrepItems map[string][]string `json:"yielded_prep_items"`
}

// Plan is the engine's output for one week, immutable once produced.
type Plan struct {
	WeekStartDate string    `json:"week_start_date"`
	GeneratedAt   string    `json:"generated_at"`
	Seed          *int64    `json:"seed"`
	Days          []PlanDay `json:"days"`
	Metadata      Metadata  `json:"metadata"`
	Summary       Summary   `json:"summary"`
}

// ScheduledRecipeIDs returns the ids of freshly cooked meals in plan order.
// Leftover slots reference a meal already counted and are excluded.
func (p *Plan) ScheduledRecipeIDs() []string {
	var ids []string
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			if meal.RecipeID != nil {
				ids = append(ids, *meal.RecipeID)
			}
		}
	}
	return ids
}
