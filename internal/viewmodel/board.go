package viewmodel

import (
	"sort"
	"strings"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/dataset"
	"github.com/salescope/salescope/internal/model"
)

// BoardState is the immutable view state for one yearly-board render.
type BoardState struct {
	Criteria analytics.Criteria
	Metric   model.Metric
	SortKey  string
	SortDesc bool
}

// DefaultBoardState matches the dashboard's initial selection.
func DefaultBoardState() BoardState {
	return BoardState{
		Criteria: analytics.DefaultCriteria(),
		Metric:   model.MetricSales2025EstGross,
		SortKey:  model.MetricSales2025EstGross.Key(),
		SortDesc: true,
	}
}

// YearlyTable is the sorted yearly data table plus its column spec.
type YearlyTable struct {
	Columns  []Column
	Rows     []model.SalesRecord
	SortKey  string
	SortDesc bool
}

// BoardView is everything the yearly board renders, derived from one state.
type BoardView struct {
	KPIs               []Card
	TopCustomers       []analytics.NamedValue
	Totals             []analytics.NamedValue
	YearTotals         []YearTotal
	CategoryDonut      []DonutSlice
	RegionComparison   GroupedComparison
	CategoryComparison GroupedComparison
	CategoryMix        analytics.MixTable
	DeltaCharts        []DeltaChart
	Table              YearlyTable
}

// YearlyTableColumns is the yearly table column spec, in display order.
func YearlyTableColumns() []Column {
	return []Column{
		{Key: "customer_code", Label: "Customer Code"},
		{Key: "customer_name", Label: "Customer Name"},
		{Key: "customer_name_normalized", Label: "Customer (Normalized)"},
		{Key: "customer_category", Label: "Category"},
		{Key: "region", Label: "Region"},
		{Key: "sales_2025_est_gross", Label: "2025 Gross"},
		{Key: "sales_2025_est_net", Label: "2025 Net"},
		{Key: "sales_2024_gross", Label: "2024 Gross"},
		{Key: "sales_2024_net", Label: "2024 Net"},
		{Key: "sales_2025_forecast", Label: "2025 Forecast"},
		{Key: "sales_2026_gross_positive", Label: "2026 Gross Positive"},
	}
}

// SortKeys lists the yearly table sort keys in column order.
func SortKeys() []string {
	columns := YearlyTableColumns()
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// ValidSortKey reports whether key names a yearly table column.
func ValidSortKey(key string) bool {
	for _, k := range SortKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// deltaThreshold is the noise floor for yearly delta rankings: customers
// below it in either period are too small to rank.
const deltaThreshold = 10_000

// BuildBoard filters the yearly records by the state's criteria and derives
// every yearly view model. The dataset is never mutated; calling BuildBoard
// twice with the same state yields the same view.
func BuildBoard(d *dataset.Dataset, state BoardState) BoardView {
	filtered := analytics.FilterRecords(d.Records, state.Criteria)

	metricOf := func(m model.Metric) func(model.SalesRecord) float64 {
		return func(r model.SalesRecord) float64 { return r.MetricValue(m) }
	}
	customer := func(r model.SalesRecord) string { return r.GroupValue(model.DimensionCustomer) }
	category := func(r model.SalesRecord) string { return r.GroupValue(model.DimensionCategory) }
	region := func(r model.SalesRecord) string { return r.GroupValue(model.DimensionRegion) }

	view := BoardView{}

	for _, m := range model.AllMetrics() {
		view.KPIs = append(view.KPIs, Card{
			Label: m.Label(),
			Value: analytics.SumMetric(filtered, metricOf(m)),
		})
	}

	view.TopCustomers = analytics.TopN(
		analytics.AggregateBy(filtered, customer, metricOf(state.Metric)), 10)

	view.Totals = []analytics.NamedValue{
		{Name: "2024 Gross Sales", Value: analytics.SumMetric(filtered, metricOf(model.MetricSales2024Gross))},
		{Name: "2025 Gross Sales", Value: analytics.SumMetric(filtered, metricOf(model.MetricSales2025EstGross))},
		{Name: "2025 Forecast", Value: analytics.SumMetric(filtered, metricOf(model.MetricSales2025Forecast))},
		{Name: "2026 Forecast", Value: analytics.SumMetric(filtered, metricOf(model.MetricSales2026GrossPositive))},
	}

	yearValues := []float64{
		analytics.SumMetric(filtered, metricOf(model.MetricSales2024Gross)),
		analytics.SumMetric(filtered, metricOf(model.MetricSales2025EstGross)),
		analytics.SumMetric(filtered, metricOf(model.MetricSales2026GrossPositive)),
	}
	yoy := analytics.YoYSeries(yearValues)
	for i, year := range []string{"2024", "2025", "2026"} {
		view.YearTotals = append(view.YearTotals, YearTotal{
			Year:  year,
			Value: yearValues[i],
			YoY:   yoy[i],
		})
	}

	donut := analytics.PositiveOnly(analytics.SortDesc(
		analytics.AggregateBy(filtered, category, metricOf(model.MetricSales2025EstNet))))
	donutTotal := analytics.Total(donut)
	for _, slice := range donut {
		view.CategoryDonut = append(view.CategoryDonut, DonutSlice{
			Name:  slice.Name,
			Value: slice.Value,
			Share: analytics.Share(slice.Value, donutTotal),
		})
	}

	comparisonMetrics := []struct {
		label  string
		metric model.Metric
	}{
		{"2025 Gross Sales", model.MetricSales2025EstGross},
		{"2025 Forecast", model.MetricSales2025Forecast},
		{"2026 Forecast", model.MetricSales2026GrossPositive},
	}

	regions := analytics.UniqueSorted(collectField(filtered, region))
	view.RegionComparison = groupedComparison(filtered, regions, region, comparisonMetrics, metricOf)

	categories := analytics.UniqueSorted(collectField(filtered, category))
	view.CategoryComparison = groupedComparison(filtered, categories, category, comparisonMetrics, metricOf)

	// Each mix series totals a different metric over the same filtered set,
	// so the table is assembled column by column.
	view.CategoryMix = mixByMetric(filtered, categories, category, []model.Metric{
		model.MetricSales2025Forecast,
		model.MetricSales2025EstGross,
		model.MetricSales2026GrossPositive,
	}, []string{"2025 Forecast", "2025 Gross Sales", "2026 Forecast"}, metricOf)

	view.DeltaCharts = []DeltaChart{
		deltaChart("Top Increases 2024 → 2025", filtered, customer, metricOf(model.MetricSales2024Gross), metricOf(model.MetricSales2025EstGross), analytics.DirectionUp),
		deltaChart("Top Decreases 2024 → 2025", filtered, customer, metricOf(model.MetricSales2024Gross), metricOf(model.MetricSales2025EstGross), analytics.DirectionDown),
		deltaChart("Beat 2025 Forecast", filtered, customer, metricOf(model.MetricSales2025Forecast), metricOf(model.MetricSales2025EstGross), analytics.DirectionUp),
		deltaChart("Missed 2025 Forecast", filtered, customer, metricOf(model.MetricSales2025Forecast), metricOf(model.MetricSales2025EstGross), analytics.DirectionDown),
		deltaChart("Top Increases 2025 → 2026", filtered, customer, metricOf(model.MetricSales2025EstGross), metricOf(model.MetricSales2026GrossPositive), analytics.DirectionUp),
		deltaChart("Top Decreases 2025 → 2026", filtered, customer, metricOf(model.MetricSales2025EstGross), metricOf(model.MetricSales2026GrossPositive), analytics.DirectionDown),
	}

	view.Table = YearlyTable{
		Columns:  YearlyTableColumns(),
		Rows:     sortRecords(filtered, state.SortKey, state.SortDesc),
		SortKey:  state.SortKey,
		SortDesc: state.SortDesc,
	}

	return view
}

func deltaChart(title string, rows []model.SalesRecord, name func(model.SalesRecord) string, base, compare func(model.SalesRecord) float64, dir analytics.Direction) DeltaChart {
	return DeltaChart{
		Title:     title,
		Direction: dir,
		Rows:      analytics.TopDelta(rows, name, base, compare, deltaThreshold, deltaThreshold, 10, dir),
	}
}

func groupedComparison(rows []model.SalesRecord, labels []string, group func(model.SalesRecord) string, series []struct {
	label  string
	metric model.Metric
}, metricOf func(model.Metric) func(model.SalesRecord) float64) GroupedComparison {
	out := GroupedComparison{Labels: labels}
	for _, s := range series {
		values := make([]float64, len(labels))
		sums := make(map[string]float64)
		metric := metricOf(s.metric)
		for _, r := range rows {
			sums[group(r)] += metric(r)
		}
		for i, label := range labels {
			values[i] = sums[label]
		}
		out.Series = append(out.Series, Series{Label: s.label, Values: values})
	}
	return out
}

func mixByMetric(rows []model.SalesRecord, categories []string, group func(model.SalesRecord) string, metrics []model.Metric, labels []string, metricOf func(model.Metric) func(model.SalesRecord) float64) analytics.MixTable {
	table := analytics.MixTable{
		SeriesLabels: labels,
		Totals:       make([]float64, len(metrics)),
	}

	sums := make([]map[string]float64, len(metrics))
	for i, m := range metrics {
		metric := metricOf(m)
		table.Totals[i] = analytics.SumMetric(rows, metric)
		sums[i] = make(map[string]float64)
		for _, r := range rows {
			sums[i][group(r)] += metric(r)
		}
	}

	for _, c := range categories {
		row := analytics.MixRow{Name: c, Shares: make([]float64, len(metrics))}
		for i := range metrics {
			row.Shares[i] = analytics.Share(sums[i][c], table.Totals[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func collectField(rows []model.SalesRecord, value func(model.SalesRecord) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, value(r))
	}
	return out
}

// sortRecords orders a copy of the rows by the table sort key: numerically
// for metric columns, lexically otherwise.
func sortRecords(rows []model.SalesRecord, key string, desc bool) []model.SalesRecord {
	out := make([]model.SalesRecord, len(rows))
	copy(out, rows)

	if metric, ok := model.MetricFromKey(key); ok {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].MetricValue(metric), out[j].MetricValue(metric)
			if desc {
				return a > b
			}
			return a < b
		})
		return out
	}

	text := func(r model.SalesRecord) string {
		switch key {
		case "customer_code":
			return r.CustomerCode
		case "customer_name":
			return r.CustomerName
		case "customer_name_normalized":
			return r.CustomerNameNormalized
		case "customer_category":
			return r.CustomerCategory
		case "region":
			return r.Region
		}
		return ""
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := text(out[i]), text(out[j])
		if desc {
			return strings.Compare(a, b) > 0
		}
		return strings.Compare(a, b) < 0
	})
	return out
}
