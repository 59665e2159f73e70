package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/viewmodel"
)

// RenderBoard renders the yearly board view as styled terminal output.
func RenderBoard(view viewmodel.BoardView) string {
	var sections []string

	sections = append(sections, FormatTitle("Yearly Sales Board"))
	sections = append(sections, renderKPIs(view.KPIs))
	sections = append(sections, renderNamedValues("Totals", view.Totals))
	sections = append(sections, renderYearTotals(view.YearTotals))
	sections = append(sections, renderNamedValues("Top Customers", view.TopCustomers))
	sections = append(sections, renderDonut("2025 Net Sales by Category", view.CategoryDonut))
	sections = append(sections, renderGrouped("By Region", view.RegionComparison))
	sections = append(sections, renderGrouped("By Category", view.CategoryComparison))
	sections = append(sections, renderMix("Category Mix", view.CategoryMix))
	for _, chart := range view.DeltaCharts {
		sections = append(sections, renderDelta(chart))
	}
	sections = append(sections, renderYearlyTable(view.Table))

	return strings.Join(sections, "\n\n")
}

// RenderMonthly renders the monthly board view as styled terminal output.
func RenderMonthly(view viewmodel.MonthlyView) string {
	var sections []string

	title := fmt.Sprintf("Monthly Sales Board, %s 2026 (%s)", viewmodel.MonthName(view.Month), view.Metric.Label())
	sections = append(sections, FormatTitle(title))
	sections = append(sections, renderKPIs(view.KPIs))
	sections = append(sections, renderComparison("Month vs Prior and Forecast", view.MonthTotals))
	sections = append(sections, renderComparison("YTD vs Prior and Forecast", view.YTDTotals))
	sections = append(sections, renderDonut("Month by Category", view.MonthDonut))
	sections = append(sections, renderDonut("YTD by Category", view.YTDDonut))
	sections = append(sections, renderNamedValues("Top Customers (Month)", view.TopMonth))
	sections = append(sections, renderNamedValues("Top Customers (YTD)", view.TopYTD))
	sections = append(sections, renderGrouped("By Region (Month)", view.RegionComparison))
	sections = append(sections, renderGrouped("By Category (Month)", view.CategoryComparison))
	sections = append(sections, renderGrouped("By Region (YTD)", view.RegionComparisonYTD))
	sections = append(sections, renderGrouped("By Category (YTD)", view.CategoryComparisonYTD))
	for _, chart := range view.DeltaCharts {
		sections = append(sections, renderDelta(chart))
	}
	sections = append(sections, renderMix("Category Mix (YTD)", view.CategoryMixYTD))
	sections = append(sections, renderMonthlyTable("Customer Detail (Month)", view.MonthTable))
	sections = append(sections, renderMonthlyTable("Customer Detail (YTD)", view.YTDTable))

	return strings.Join(sections, "\n\n")
}

func renderKPIs(cards []viewmodel.Card) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		content := lipgloss.JoinVertical(lipgloss.Center,
			SubtleStyle.Render(c.Label),
			BoldStyle.Render(Currency(c.Value)),
		)
		boxes = append(boxes, KPIStyle.Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderNamedValues(title string, values []analytics.NamedValue) string {
	if len(values) == 0 {
		return sectionTitle(title) + "\n" + SubtleStyle.Render("no data")
	}
	width := 0
	for _, v := range values {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	var b strings.Builder
	b.WriteString(sectionTitle(title))
	for _, v := range values {
		b.WriteString(fmt.Sprintf("\n  %-*s  %s", width, v.Name, Currency(v.Value)))
	}
	return b.String()
}

func renderYearTotals(totals []viewmodel.YearTotal) string {
	var b strings.Builder
	b.WriteString(sectionTitle("Gross Sales by Year"))
	for _, t := range totals {
		yoy := ""
		if t.YoY != nil {
			rendered := Percent(*t.YoY)
			if *t.YoY >= 0 {
				yoy = "  " + UpStyle.Render(UpIcon+" "+rendered)
			} else {
				yoy = "  " + DownStyle.Render(DownIcon+" "+rendered)
			}
		}
		b.WriteString(fmt.Sprintf("\n  %s  %s%s", t.Year, Currency(t.Value), yoy))
	}
	return b.String()
}

func renderDonut(title string, slices []viewmodel.DonutSlice) string {
	if len(slices) == 0 {
		return sectionTitle(title) + "\n" + SubtleStyle.Render("no data")
	}
	var b strings.Builder
	b.WriteString(sectionTitle(title))
	for _, s := range slices {
		b.WriteString(fmt.Sprintf("\n  %s  %s (%s)", s.Name, FormatShort(s.Value), Percent(s.Share)))
	}
	return b.String()
}

func renderGrouped(title string, g viewmodel.GroupedComparison) string {
	if len(g.Labels) == 0 {
		return sectionTitle(title) + "\n" + SubtleStyle.Render("no data")
	}
	var b strings.Builder
	b.WriteString(sectionTitle(title))

	header := make([]string, 0, len(g.Series)+1)
	header = append(header, "")
	for _, s := range g.Series {
		header = append(header, s.Label)
	}
	rows := make([][]string, 0, len(g.Labels))
	for i, label := range g.Labels {
		row := []string{label}
		for _, s := range g.Series {
			row = append(row, FormatShort(s.Values[i]))
		}
		rows = append(rows, row)
	}
	b.WriteString("\n" + renderColumns(header, rows))
	return b.String()
}

func renderComparison(title string, c viewmodel.ComparisonSummary) string {
	var b strings.Builder
	b.WriteString(sectionTitle(title))
	for _, bar := range c.Bars {
		b.WriteString(fmt.Sprintf("\n  %s  %s", bar.Name, Currency(bar.Value)))
	}
	b.WriteString("\n  " + MetaStyle.Render(fmt.Sprintf("vs 2025: %s (%s)", SignedShort(c.VsPrior.Delta), Percent(c.VsPrior.Pct))))
	b.WriteString("\n  " + MetaStyle.Render(fmt.Sprintf("vs forecast: %s (%s)", SignedShort(c.VsForecast.Delta), Percent(c.VsForecast.Pct))))
	return b.String()
}

func renderDelta(chart viewmodel.DeltaChart) string {
	if len(chart.Rows) == 0 {
		return sectionTitle(chart.Title) + "\n" + SubtleStyle.Render("no data")
	}
	style := UpStyle
	if chart.Direction == analytics.DirectionDown {
		style = DownStyle
	}
	var b strings.Builder
	b.WriteString(sectionTitle(chart.Title))
	for _, r := range chart.Rows {
		b.WriteString(fmt.Sprintf("\n  %s  %s  %s", r.Name, style.Render(SignedShort(r.Delta)),
			MetaStyle.Render(fmt.Sprintf("(%s → %s)", FormatShort(r.Base), FormatShort(r.Compare)))))
	}
	return b.String()
}

func renderMix(title string, mix analytics.MixTable) string {
	if len(mix.Rows) == 0 {
		return sectionTitle(title) + "\n" + SubtleStyle.Render("no data")
	}
	header := append([]string{""}, mix.SeriesLabels...)
	rows := make([][]string, 0, len(mix.Rows)+1)
	for _, r := range mix.Rows {
		row := []string{r.Name}
		for _, share := range r.Shares {
			row = append(row, Percent(share))
		}
		rows = append(rows, row)
	}
	totals := []string{"Total"}
	for _, t := range mix.Totals {
		totals = append(totals, FormatShort(t))
	}
	rows = append(rows, totals)
	return sectionTitle(title) + "\n" + renderColumns(header, rows)
}

func renderYearlyTable(t viewmodel.YearlyTable) string {
	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c.Label)
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{
			r.CustomerCode,
			r.CustomerName,
			r.CustomerNameNormalized,
			r.CustomerCategory,
			r.Region,
			Currency(r.Sales2025EstGross.Float()),
			Currency(r.Sales2025EstNet.Float()),
			Currency(r.Sales2024Gross.Float()),
			Currency(r.Sales2024Net.Float()),
			Currency(r.Sales2025Forecast.Float()),
			Currency(r.Sales2026GrossPositive.Float()),
		})
	}
	return sectionTitle("Yearly Data") + "\n" + renderColumns(header, rows) +
		"\n" + TableMeta(len(t.Rows), t.SortKey, t.SortDesc)
}

func renderMonthlyTable(title string, t viewmodel.MonthlyTable) string {
	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c.Label)
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []string{
			r.CustomerCode,
			r.CustomerName,
			r.CustomerCategory,
			r.Region,
			Currency(r.Gross2026),
			Currency(r.Net2026),
			Percent(r.GrossMargin2026),
			Percent(r.NetMargin2026),
			Currency(r.Gross2025),
			Currency(r.Net2025),
			Percent(r.GrossMargin2025),
			Percent(r.NetMargin2025),
			Currency(r.ForecastGross),
			Currency(r.ForecastNet),
			Percent(r.ForecastGrossMargin),
			Percent(r.ForecastNetMargin),
		})
	}
	return sectionTitle(title) + "\n" + renderColumns(header, rows) +
		"\n" + TableMeta(len(t.Rows), t.SortKey, true)
}

func sectionTitle(title string) string {
	return TitleStyle.UnsetMargins().Render(title)
}

// renderColumns lays out a header row plus data rows with padded columns.
func renderColumns(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		b.WriteString("  ")
	}
	for _, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			b.WriteString(TableCellStyle.Render(pad(cell, widths[i])))
		}
	}
	return b.String()
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
