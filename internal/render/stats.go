package render

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mealplanner/internal/archive"
)

// UsageTable renders archive usage statistics as a terminal table.
func UsageTable(usage []archive.RecipeUsage) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Recipe", "ID", "Times Scheduled"})
	for _, row := range usage {
		tw.AppendRow(table.Row{row.RecipeName, row.RecipeID, strconv.Itoa(row.TimesUsed)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
