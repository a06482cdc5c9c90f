package render

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mealplanner/internal/groceries"
)

// GroceryCSV renders the aggregated grocery list as a CSV table with the
// columns item, quantity, unit, category, sources.
func GroceryCSV(items []groceries.Item) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write([]string{"item", "quantity", "unit", "category", "sources"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		record := []string{
			item.Item,
			fmt.Sprintf("%.2f", item.Quantity),
			item.Unit,
			item.Category,
			strings.Join(item.Sources, "; "),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return builder.String(), nil
}

// GroceryMarkdown renders the grocery list grouped by category.
func GroceryMarkdown(items []groceries.Item) string {
	byCategory := make(map[string][]groceries.Item)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	lines := []string{"# Grocery List", ""}
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("## %s", titleCase(category)))
		grouped := byCategory[category]
		sort.Slice(grouped, func(i, j int) bool { return grouped[i].Item < grouped[j].Item })
		for _, item := range grouped {
			quantity := trimQuantity(item.Quantity)
			unit := ""
			if item.Unit != "" {
				unit = " " + item.Unit
			}
			lines = append(lines, fmt.Sprintf("- %s — %s%s", item.Item, quantity, unit))
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// GroceryTable renders the grocery list as a terminal table.
func GroceryTable(items []groceries.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Item", "Quantity", "Unit", "Category"})
	for _, item := range items {
		tw.AppendRow(table.Row{item.Item, trimQuantity(item.Quantity), item.Unit, item.Category})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// trimQuantity formats to two decimals and strips trailing zeros, with "0"
// as the floor for values that round away entirely.
func trimQuantity(quantity float64) string {
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", quantity), "0"), ".")
	if formatted == "" || formatted == "-" {
		return "0"
	}
	return formatted
}
