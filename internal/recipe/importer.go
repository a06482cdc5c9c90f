package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ldRecipe mirrors the subset of a schema.org Recipe node the importer maps
// onto the catalog schema.
type ldRecipe struct {
	Type             any      `json:"@type"`
	Name             string   `json:"name"`
	PrepTime         string   `json:"prepTime"`
	CookTime         string   `json:"cookTime"`
	RecipeYield      any      `json:"recipeYield"`
	RecipeCategory   any      `json:"recipeCategory"`
	Keywords         any      `json:"keywords"`
	RecipeIngredient []string `json:"recipeIngredient"`
}

// ImportHTML extracts a recipe from a saved web page by locating its
// schema.org Recipe JSON-LD node. Pages without one are not importable.
func ImportHTML(path string) (Recipe, error) {
	file, err := os.Open(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("open page: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return Recipe{}, fmt.Errorf("parse page %s: %w", path, err)
	}

	var node *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node = findRecipeNode([]byte(s.Text()))
		return node == nil
	})
	if node == nil {
		return Recipe{}, fmt.Errorf("no schema.org Recipe data found in %s", path)
	}

	rec := node.toRecipe()
	if err := rec.Validate(); err != nil {
		return Recipe{}, err
	}
	return rec, nil
}

// findRecipeNode digs a Recipe node out of a JSON-LD block, which may be a
// single node, an array of nodes, or a document with a @graph list.
func findRecipeNode(data []byte) *ldRecipe {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return searchLD(raw)
}

func searchLD(raw any) *ldRecipe {
	switch value := raw.(type) {
	case []any:
		for _, entry := range value {
			if found := searchLD(entry); found != nil {
				return found
			}
		}
	case map[string]any:
		if isRecipeType(value["@type"]) {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil
			}
			var node ldRecipe
			if err := json.Unmarshal(encoded, &node); err != nil {
				return nil
			}
			return &node
		}
		if graph, ok := value["@graph"]; ok {
			return searchLD(graph)
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch value := t.(type) {
	case string:
		return value == "Recipe"
	case []any:
		for _, entry := range value {
			if s, ok := entry.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func (n ldRecipe) toRecipe() Recipe {
	rec := Recipe{
		ID:                slugify(n.Name),
		Name:              n.Name,
		Meals:             mealsFromCategory(n.RecipeCategory),
		Tags:              stringList(n.Keywords),
		PrepTimeMin:       durationMinutes(n.PrepTime),
		CookTimeMin:       durationMinutes(n.CookTime),
		ServingsPerRecipe: yieldServings(n.RecipeYield),
	}
	for _, line := range n.RecipeIngredient {
		rec.Ingredients = append(rec.Ingredients, parseIngredientLine(line))
	}
	rec.normalize()
	return rec
}

var (
	slugPattern     = regexp.MustCompile(`[^a-z0-9]+`)
	durationPattern = regexp.MustCompile(`^P(?:([0-9]+)D)?(?:T(?:([0-9]+)H)?(?:([0-9]+)M)?(?:[0-9]+S)?)?$`)
	quantityPattern = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)\s*([a-zA-Z]*)\s+(.+)$`)
	leadingNumber   = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

// durationMinutes converts an ISO-8601 duration such as PT1H30M to minutes.
func durationMinutes(value string) float64 {
	match := durationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0
	}
	days, _ := strconv.ParseFloat(zeroIfEmpty(match[1]), 64)
	hours, _ := strconv.ParseFloat(zeroIfEmpty(match[2]), 64)
	minutes, _ := strconv.ParseFloat(zeroIfEmpty(match[3]), 64)
	return days*24*60 + hours*60 + minutes
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// yieldServings pulls the first number out of a recipeYield value, which
// publishers encode as a number, a string ("Serves 4"), or a list of both.
func yieldServings(value any) float64 {
	switch yield := value.(type) {
	case float64:
		return yield
	case string:
		if match := leadingNumber.FindString(yield); match != "" {
			servings, _ := strconv.ParseFloat(match, 64)
			return servings
		}
	case []any:
		for _, entry := range yield {
			if servings := yieldServings(entry); servings > 0 {
				return servings
			}
		}
	}
	return 0
}

func mealsFromCategory(value any) []string {
	var meals []string
	for _, category := range stringList(value) {
		lowered := strings.ToLower(strings.TrimSpace(category))
		if IsMealType(lowered) {
			meals = append(meals, lowered)
		}
	}
	if len(meals) == 0 {
		meals = []string{"dinner"}
	}
	return meals
}

// stringList flattens keyword/category values, which appear as plain
// strings, comma-joined strings, or arrays.
func stringList(value any) []string {
	var out []string
	switch v := value.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	case []any:
		for _, entry := range v {
			out = append(out, stringList(entry)...)
		}
	}
	return out
}

// parseIngredientLine splits "200 g pasta" style lines into quantity, unit
// and item. Lines without a leading quantity become qty-1 items.
func parseIngredientLine(line string) Ingredient {
	trimmed := strings.TrimSpace(line)
	if match := quantityPattern.FindStringSubmatch(trimmed); match != nil {
		qty, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
		if err == nil {
			return Ingredient{
				Item:     strings.TrimSpace(match[3]),
				Qty:      qty,
				Unit:     strings.ToLower(match[2]),
				Category: "uncategorized",
			}
		}
	}
	return Ingredient{Item: trimmed, Qty: 1, Category: "uncategorized"}
}
