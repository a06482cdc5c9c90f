package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// DayNames lists the days of a planning week in schedule order.
var DayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// MealTypes lists the meal slots of a day in schedule order.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// ErrMissingID is returned when a recipe has no id.
var ErrMissingID = errors.New("recipe is missing required field \"id\"")

// Ingredient is a single grocery item required by a recipe.
type Ingredient struct {
	Item     string  `json:"item" yaml:"item"`
	Qty      float64 `json:"qty" yaml:"qty"`
	Unit     string  `json:"unit" yaml:"unit"`
	Category string  `json:"category" yaml:"category"`
}

// Recipe is a prepared meal that can be slotted into the weekly plan.
type Recipe struct {
	ID                   string       `json:"id" yaml:"id"`
	Name                 string       `json:"name" yaml:"name"`
	Meals                []string     `json:"meals" yaml:"meals"`
	Tags                 []string     `json:"tags" yaml:"tags"`
	PrepTimeMin          float64      `json:"prep_time_min" yaml:"prep_time_min"`
	CookTimeMin          float64      `json:"cook_time_min" yaml:"cook_time_min"`
	ServingsPerRecipe    float64      `json:"servings_per_recipe" yaml:"servings_per_recipe"`
	ProducesLeftovers    bool         `json:"produces_leftovers" yaml:"produces_leftovers"`
	LeftoversReplaceMeal string       `json:"leftovers_replace_meal,omitempty" yaml:"leftovers_replace_meal"`
	YieldsPrepItem       []string     `json:"yields_prep_item" yaml:"yields_prep_item"`
	UsesPrepItem         []string     `json:"uses_prep_item" yaml:"uses_prep_item"`
	Ingredients          []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// TotalTimeMin is the combined prep and cook time.
func (r Recipe) TotalTimeMin() float64 {
	return r.PrepTimeMin + r.CookTimeMin
}

// ServesMeal reports whether the recipe is tagged for the given meal slot.
func (r Recipe) ServesMeal(meal string) bool {
	for _, m := range r.Meals {
		if m == meal {
			return true
		}
	}
	return false
}

// normalize applies decode-time defaults so a recipe parsed from a sparse
// document behaves the same as a fully specified one.
func (r *Recipe) normalize() {
	if r.ServingsPerRecipe == 0 {
		r.ServingsPerRecipe = 1
	}
	r.LeftoversReplaceMeal = strings.ToLower(r.LeftoversReplaceMeal)
	if r.Meals == nil {
		r.Meals = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.YieldsPrepItem == nil {
		r.YieldsPrepItem = []string{}
	}
	if r.UsesPrepItem == nil {
		r.UsesPrepItem = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	for i := range r.Ingredients {
		if r.Ingredients[i].Category == "" {
			r.Ingredients[i].Category = "uncategorized"
		}
	}
}

// Validate checks the invariants loaders must enforce before a catalog is
// handed to the planner.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrMissingID
	}
	if r.PrepTimeMin < 0 || r.CookTimeMin < 0 {
		return fmt.Errorf("recipe %q has negative time values", r.ID)
	}
	return nil
}

// Lookup builds an id-keyed index over a catalog.
func Lookup(recipes []Recipe) map[string]Recipe {
	index := make(map[string]Recipe, len(recipes))
	for _, r := range recipes {
		index[r.ID] = r
	}
	return index
}

// IsDayName reports whether day is one of the seven canonical day names.
func IsDayName(day string) bool {
	for _, name := range DayNames {
		if name == day {
			return true
		}
	}
	return false
}

// IsMealType reports whether meal is one of the four canonical meal slots.
func IsMealType(meal string) bool {
	for _, name := range MealTypes {
		if name == meal {
			return true
		}
	}
	return false
}
