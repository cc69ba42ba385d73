package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bobmcallan/stocklens/internal/format"
	"github.com/bobmcallan/stocklens/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "markdown render failed: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func heatmapTitle(view *models.HeatmapView) string {
	return titleStyle.Render(fmt.Sprintf("%s · %s", view.IndexName, view.FilterLabel)) +
		dimStyle.Render(fmt.Sprintf("  %d of %d stocks", view.Count, view.Total))
}

const (
	colSymbol = iota
	colName
	colPrice
	colDaily
	colHigh
	colChange
	colMarketCap
)

// heatmapTable lays the view out as a terminal table. The change column is
// painted with the row's bucket colour.
func heatmapTable(view *models.HeatmapView) string {
	if len(view.Rows) == 0 {
		return dimStyle.Render("No stocks in this range.")
	}

	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, []string{
			r.Symbol,
			truncate(r.Name, 28),
			format.Currency(r.CurrentPrice, ""),
			format.Percent(r.DailyChangePercent),
			format.Currency(r.FiftyTwoWeekHigh, ""),
			format.Percent(r.ChangePercent),
			format.MarketCap(r.MarketCap),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Symbol", "Name", "Price", "Day", "52W High", "From High", "Mkt Cap").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(view.Rows) {
				return cellStyle
			}
			r := view.Rows[row]
			switch col {
			case colChange:
				return cellStyle.Foreground(lipgloss.Color(format.HeatColor(r.ChangePercent).Color))
			case colDaily:
				if r.DailyChangePercent < 0 {
					return lossStyle
				}
				return gainStyle
			case colSymbol:
				return cellStyle.Bold(true)
			}
			return cellStyle
		})

	return t.String()
}

func catalogText() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Indexes") + "\n")
	for _, idx := range models.Indexes {
		fmt.Fprintf(&sb, "  %-12s %s\n", idx.ID, idx.Name)
	}
	sb.WriteString("\n" + titleStyle.Render("Filters") + "\n")
	fmt.Fprintf(&sb, "  %-26s %-10s %s\n", models.BucketAll, "", models.BucketAllLabel)
	for _, b := range models.Buckets {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("■")
		fmt.Fprintf(&sb, "  %-26s %-10s %s %s\n", b.Bucket, b.Alias, swatch, b.Label)
	}
	sb.WriteString("\n" + titleStyle.Render("Sort keys") + "\n")
	for _, k := range models.SortKeys {
		fmt.Fprintf(&sb, "  %s\n", k)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
