package viewmodel

import (
	"fmt"
	"sort"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/dataset"
	"github.com/salescope/salescope/internal/model"
)

// MonthlyState is the immutable view state for one monthly-board render.
// Month is a 1-12 calendar month with 2026 actual data.
type MonthlyState struct {
	Criteria analytics.Criteria
	Month    int
	Metric   model.MonthlyMetric
}

// DefaultMonthlyState matches the dashboard's initial monthly selection.
func DefaultMonthlyState(month int) MonthlyState {
	return MonthlyState{
		Criteria: analytics.DefaultCriteria(),
		Month:    month,
		Metric:   model.MonthlyGross,
	}
}

// MonthlyTableRow is one customer's month (or YTD) slice across the three
// monthly collections: 2026 actual, 2025 same period, 2026 forecast. Margin
// percentages are fractions of the matching sales amount, zero-guarded.
type MonthlyTableRow struct {
	CustomerCode     string
	CustomerName     string
	CustomerCategory string
	Region           string

	Gross2026       float64
	Net2026         float64
	GrossMargin2026 float64
	NetMargin2026   float64

	Gross2025       float64
	Net2025         float64
	GrossMargin2025 float64
	NetMargin2025   float64

	ForecastGross       float64
	ForecastNet         float64
	ForecastGrossMargin float64
	ForecastNetMargin   float64
}

// MonthlyTable is a customer breakdown table plus its column spec.
type MonthlyTable struct {
	Columns []Column
	Rows    []MonthlyTableRow
	SortKey string
}

// MonthlyView is everything the monthly board renders, derived from one
// state.
type MonthlyView struct {
	Month       int
	Metric      model.MonthlyMetric
	KPIs        []Card
	MonthDonut  []DonutSlice
	YTDDonut    []DonutSlice
	TopMonth    []analytics.NamedValue
	TopYTD      []analytics.NamedValue
	MonthTotals ComparisonSummary
	YTDTotals   ComparisonSummary

	RegionComparison      GroupedComparison
	CategoryComparison    GroupedComparison
	RegionComparisonYTD   GroupedComparison
	CategoryComparisonYTD GroupedComparison

	DeltaCharts    []DeltaChart
	CategoryMixYTD analytics.MixTable

	MonthTable MonthlyTable
	YTDTable   MonthlyTable
}

// MonthlyTableColumns is the monthly table column spec, in display order.
func MonthlyTableColumns() []Column {
	return []Column{
		{Key: "customer_code", Label: "Customer Code"},
		{Key: "customer_name", Label: "Customer Name"},
		{Key: "customer_category", Label: "Customer Category"},
		{Key: "region", Label: "Region"},
		{Key: "sales_2026_gross", Label: "2026 Monthly Gross Sales"},
		{Key: "sales_2026_net", Label: "2026 Monthly Net Sales"},
		{Key: "sales_2026_gm_pct", Label: "2026 Gross Margin %"},
		{Key: "sales_2026_nm_pct", Label: "2026 Net Margin %"},
		{Key: "sales_2025_gross", Label: "2025 Gross Sales"},
		{Key: "sales_2025_net", Label: "2025 Net Sales"},
		{Key: "sales_2025_gm_pct", Label: "2025 Gross Margin %"},
		{Key: "sales_2025_nm_pct", Label: "2025 Net Margin %"},
		{Key: "sales_2026_fc_gross", Label: "2026 Forecast Gross Sales"},
		{Key: "sales_2026_fc_net", Label: "2026 Forecast Net Sales"},
		{Key: "sales_2026_fc_gm_pct", Label: "2026 Forecast Gross Margin %"},
		{Key: "sales_2026_fc_nm_pct", Label: "2026 Forecast Net Margin %"},
	}
}

// BuildMonthly filters the monthly collections by the state's criteria and
// derives every monthly view model for the selected month and its
// year-to-date window.
func BuildMonthly(d *dataset.Dataset, state MonthlyState) MonthlyView {
	month := state.Month
	metric := state.Metric
	metricLabel := metric.Label()

	value := func(r model.MonthlyRecord) float64 { return r.Value(metric) }
	customer := func(r model.MonthlyRecord) string { return r.GroupValue(model.DimensionCustomer) }
	category := func(r model.MonthlyRecord) string { return r.GroupValue(model.DimensionCategory) }
	region := func(r model.MonthlyRecord) string { return r.Region }

	current2026 := analytics.FilterMonthly(d.Actual(2026, month), state.Criteria)
	current2025 := analytics.FilterMonthly(d.Actual(2025, month), state.Criteria)
	forecast2026 := analytics.FilterMonthly(d.ForecastMonth(month), state.Criteria)

	ytd2026 := analytics.FilterMonthly(d.ActualYTD(2026, month), state.Criteria)
	ytd2025 := analytics.FilterMonthly(d.ActualYTD(2025, month), state.Criteria)
	ytdForecast := analytics.FilterMonthly(d.ForecastYTD(month), state.Criteria)

	view := MonthlyView{Month: month, Metric: metric}

	monthLabel := MonthName(month)
	view.KPIs = []Card{
		{Label: fmt.Sprintf("%s 2026 %s Sales", monthLabel, metricLabel), Value: analytics.SumMetric(current2026, value)},
		{Label: fmt.Sprintf("%s 2025 %s Sales", monthLabel, metricLabel), Value: analytics.SumMetric(current2025, value)},
		{Label: fmt.Sprintf("%s 2026 Forecast %s Sales", monthLabel, metricLabel), Value: analytics.SumMetric(forecast2026, value)},
	}

	// A region or category filter usually collapses the category breakdown
	// to a single slice; drill down to the top customers instead.
	narrowed := state.Criteria.Region != analytics.All || state.Criteria.Category != analytics.All
	var bucket customerBucket
	if narrowed {
		bucket = buildCustomerBucket(current2026, customer, value, 5)
	}

	view.MonthDonut = donutSlices(categoryOrCustomerBreakdown(current2026, narrowed, category, customer, value))
	view.YTDDonut = donutSlices(categoryOrCustomerBreakdown(ytd2026, narrowed, category, customer, value))

	view.TopMonth = analytics.TopN(analytics.AggregateBy(current2026, customer, value), 10)
	view.TopYTD = analytics.TopN(analytics.AggregateBy(ytd2026, customer, value), 10)

	view.MonthTotals = comparisonSummary(
		analytics.NamedValue{Name: fmt.Sprintf("2025 %s (Same Month)", metricLabel), Value: analytics.SumMetric(current2025, value)},
		analytics.NamedValue{Name: fmt.Sprintf("2026 %s (Actual)", metricLabel), Value: analytics.SumMetric(current2026, value)},
		analytics.NamedValue{Name: fmt.Sprintf("2026 Forecast %s", metricLabel), Value: analytics.SumMetric(forecast2026, value)},
	)
	view.YTDTotals = comparisonSummary(
		analytics.NamedValue{Name: fmt.Sprintf("2025 %s (YTD)", metricLabel), Value: analytics.SumMetric(ytd2025, value)},
		analytics.NamedValue{Name: fmt.Sprintf("2026 %s (YTD Actual)", metricLabel), Value: analytics.SumMetric(ytd2026, value)},
		analytics.NamedValue{Name: fmt.Sprintf("2026 Forecast %s (YTD)", metricLabel), Value: analytics.SumMetric(ytdForecast, value)},
	)

	seriesLabels := []string{
		fmt.Sprintf("2025 %s", metricLabel),
		fmt.Sprintf("2026 %s", metricLabel),
		fmt.Sprintf("2026 Forecast %s", metricLabel),
	}
	monthCollections := [][]model.MonthlyRecord{current2025, current2026, forecast2026}
	ytdCollections := [][]model.MonthlyRecord{ytd2025, ytd2026, ytdForecast}

	view.RegionComparison = monthlyComparison(monthCollections, seriesLabels, region, value, narrowed, bucket)
	view.CategoryComparison = monthlyComparison(monthCollections, seriesLabels, category, value, narrowed, bucket)
	view.RegionComparisonYTD = monthlyComparison(ytdCollections, seriesLabels, region, value, narrowed, bucket)
	view.CategoryComparisonYTD = monthlyComparison(ytdCollections, seriesLabels, category, value, narrowed, bucket)

	ytd2025Totals := analytics.CustomerTotals(ytd2025, customer, value)
	ytd2026Totals := analytics.CustomerTotals(ytd2026, customer, value)
	ytdForecastTotals := analytics.CustomerTotals(ytdForecast, customer, value)

	view.DeltaCharts = []DeltaChart{
		monthlyDeltaChart("Top Increases vs 2025 (YTD)", ytd2025Totals, ytd2026Totals, analytics.DirectionUp, false),
		monthlyDeltaChart("Top Decreases vs 2025 (YTD)", ytd2025Totals, ytd2026Totals, analytics.DirectionDown, false),
		monthlyDeltaChart("Beat Forecast (YTD)", ytdForecastTotals, ytd2026Totals, analytics.DirectionUp, false),
		monthlyDeltaChart("Missed Forecast (YTD)", ytdForecastTotals, ytd2026Totals, analytics.DirectionDown, true),
	}

	mixCategories := analytics.UniqueSorted(
		monthlyField(ytd2025, category),
		monthlyField(ytd2026, category),
		monthlyField(ytdForecast, category),
	)
	view.CategoryMixYTD = analytics.CategoryMix(mixCategories, []analytics.MixInput[model.MonthlyRecord]{
		{Label: seriesLabels[0], Rows: ytd2025},
		{Label: seriesLabels[1], Rows: ytd2026},
		{Label: seriesLabels[2], Rows: ytdForecast},
	}, category, value)

	sortKey := "sales_2026_gross"
	if metric == model.MonthlyNet {
		sortKey = "sales_2026_net"
	}
	view.MonthTable = monthlyTable(current2026, current2025, forecast2026, metric, sortKey)
	view.YTDTable = monthlyTable(ytd2026, ytd2025, ytdForecast, metric, sortKey)

	return view
}

func comparisonSummary(prior, actual, forecast analytics.NamedValue) ComparisonSummary {
	deltaPrior := actual.Value - prior.Value
	deltaForecast := actual.Value - forecast.Value
	return ComparisonSummary{
		Bars: []analytics.NamedValue{prior, actual, forecast},
		VsPrior: DeltaNote{
			Delta: deltaPrior,
			Pct:   analytics.Share(deltaPrior, prior.Value),
		},
		VsForecast: DeltaNote{
			Delta: deltaForecast,
			Pct:   analytics.Share(deltaForecast, forecast.Value),
		},
	}
}

// categoryOrCustomerBreakdown is the donut source: normally a category
// breakdown, but under a region or category filter a single-slice result
// falls back to the top five customers plus an "Other small customers"
// rollup. Only positive slices survive either way.
func categoryOrCustomerBreakdown(rows []model.MonthlyRecord, narrowed bool, category, customer func(model.MonthlyRecord) string, value func(model.MonthlyRecord) float64) []analytics.NamedValue {
	byCategory := analytics.SortDesc(analytics.AggregateBy(rows, category, value))

	if narrowed {
		byCustomer := analytics.SortDesc(analytics.AggregateBy(rows, customer, value))
		if len(byCategory) <= 1 && len(byCustomer) > 1 {
			byCategory = analytics.TopNWithOther(byCustomer, 5)
		}
	}
	return analytics.PositiveOnly(byCategory)
}

func donutSlices(values []analytics.NamedValue) []DonutSlice {
	total := analytics.Total(values)
	out := make([]DonutSlice, 0, len(values))
	for _, v := range values {
		out = append(out, DonutSlice{
			Name:  v.Name,
			Value: v.Value,
			Share: analytics.Share(v.Value, total),
		})
	}
	return out
}

// customerBucket is the shared top-customer substitution for grouped
// comparisons whose natural axis collapses to a single label under a
// filter. It is always built from the selected month's 2026 actuals so the
// month and YTD charts share one axis.
type customerBucket struct {
	labels []string
	top    map[string]bool
	other  bool
}

func buildCustomerBucket(rows []model.MonthlyRecord, customer func(model.MonthlyRecord) string, value func(model.MonthlyRecord) float64, limit int) customerBucket {
	totals := analytics.SortDesc(analytics.PositiveOnly(analytics.AggregateBy(rows, customer, value)))
	if len(totals) == 0 {
		return customerBucket{top: map[string]bool{}}
	}

	top := totals
	var otherTotal float64
	if len(totals) > limit {
		top = totals[:limit]
		for _, v := range totals[limit:] {
			otherTotal += v.Value
		}
	}

	b := customerBucket{top: make(map[string]bool, len(top))}
	for _, v := range top {
		b.labels = append(b.labels, v.Name)
		b.top[v.Name] = true
	}
	if otherTotal > 0 {
		b.labels = append(b.labels, analytics.OtherBucketLabel)
		b.other = true
	}
	return b
}

func (b customerBucket) sums(rows []model.MonthlyRecord, customer func(model.MonthlyRecord) string, value func(model.MonthlyRecord) float64) []float64 {
	totals := make(map[string]float64, len(b.top))
	var other float64
	for _, r := range rows {
		name := customer(r)
		if b.top[name] {
			totals[name] += value(r)
		} else {
			other += value(r)
		}
	}
	out := make([]float64, len(b.labels))
	for i, label := range b.labels {
		if label == analytics.OtherBucketLabel {
			out[i] = other
			continue
		}
		out[i] = totals[label]
	}
	return out
}

func monthlyComparison(collections [][]model.MonthlyRecord, seriesLabels []string, group func(model.MonthlyRecord) string, value func(model.MonthlyRecord) float64, narrowed bool, bucket customerBucket) GroupedComparison {
	fields := make([][]string, len(collections))
	for i, rows := range collections {
		fields[i] = monthlyField(rows, group)
	}
	labels := analytics.UniqueSorted(fields...)

	useBucket := narrowed && len(labels) <= 1 && len(bucket.labels) > 0
	if useBucket {
		out := GroupedComparison{Labels: bucket.labels}
		customer := func(r model.MonthlyRecord) string { return r.GroupValue(model.DimensionCustomer) }
		for i, rows := range collections {
			out.Series = append(out.Series, Series{
				Label:  seriesLabels[i],
				Values: bucket.sums(rows, customer, value),
			})
		}
		return out
	}

	out := GroupedComparison{Labels: labels}
	for i, rows := range collections {
		sums := make(map[string]float64)
		for _, r := range rows {
			sums[group(r)] += value(r)
		}
		values := make([]float64, len(labels))
		for j, label := range labels {
			values[j] = sums[label]
		}
		out.Series = append(out.Series, Series{Label: seriesLabels[i], Values: values})
	}
	return out
}

func monthlyDeltaChart(title string, base, compare map[string]float64, dir analytics.Direction, fill bool) DeltaChart {
	rows := analytics.TopDeltaFromMaps(base, compare, 10, dir, fill)
	kept := rows[:0]
	for _, r := range rows {
		if r.Delta != 0 {
			kept = append(kept, r)
		}
	}
	return DeltaChart{Title: title, Direction: dir, Rows: kept}
}

func monthlyField(rows []model.MonthlyRecord, value func(model.MonthlyRecord) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, value(r))
	}
	return out
}

type customerSlice struct {
	code     string
	name     string
	category string
	region   string
	gross    float64
	net      float64
	grossMgn float64
	netMgn   float64
}

// aggregateCustomerSlices folds monthly rows per customer key, summing sales
// and margin amounts. Margin amounts come from the update fields on actual
// rows and the forecast fields on forecast rows.
func aggregateCustomerSlices(rows []model.MonthlyRecord) (map[string]customerSlice, []string) {
	out := make(map[string]customerSlice)
	var order []string
	for _, r := range rows {
		key := dataset.CustomerKey(r.CustomerCode, firstNonEmptyOf(r.CustomerNameNormalized, r.CustomerName))
		s, ok := out[key]
		if !ok {
			s = customerSlice{
				code:     r.CustomerCode,
				name:     firstNonEmptyOf(r.CustomerNameNormalized, r.CustomerName),
				category: orUnknown(r.CustomerCategory),
				region:   orUnknown(r.Region),
			}
			order = append(order, key)
		}
		s.gross += r.Gross.Float()
		s.net += r.Net.Float()
		s.grossMgn += r.MarginValue(model.MonthlyGross)
		s.netMgn += r.MarginValue(model.MonthlyNet)
		out[key] = s
	}
	return out, order
}

// monthlyTable joins the three customer aggregations on customer key. Row
// identity fields come from the 2026 actual slice when present, then the
// 2025 slice, then the forecast slice.
func monthlyTable(a2026, a2025, fc []model.MonthlyRecord, metric model.MonthlyMetric, sortKey string) MonthlyTable {
	m2026, order2026 := aggregateCustomerSlices(a2026)
	m2025, order2025 := aggregateCustomerSlices(a2025)
	mFc, orderFc := aggregateCustomerSlices(fc)

	seen := make(map[string]bool)
	var keys []string
	for _, order := range [][]string{order2026, order2025, orderFc} {
		for _, k := range order {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	rows := make([]MonthlyTableRow, 0, len(keys))
	for _, k := range keys {
		a26 := m2026[k]
		a25 := m2025[k]
		f := mFc[k]

		base := a26
		if base.code == "" {
			base = a25
		}
		if base.code == "" {
			base = f
		}

		rows = append(rows, MonthlyTableRow{
			CustomerCode:     base.code,
			CustomerName:     base.name,
			CustomerCategory: orUnknown(base.category),
			Region:           orUnknown(base.region),

			Gross2026:       a26.gross,
			Net2026:         a26.net,
			GrossMargin2026: analytics.Share(a26.grossMgn, a26.gross),
			NetMargin2026:   analytics.Share(a26.netMgn, a26.net),

			Gross2025:       a25.gross,
			Net2025:         a25.net,
			GrossMargin2025: analytics.Share(a25.grossMgn, a25.gross),
			NetMargin2025:   analytics.Share(a25.netMgn, a25.net),

			ForecastGross:       f.gross,
			ForecastNet:         f.net,
			ForecastGrossMargin: analytics.Share(f.grossMgn, f.gross),
			ForecastNetMargin:   analytics.Share(f.netMgn, f.net),
		})
	}

	sortValue := func(r MonthlyTableRow) float64 {
		if metric == model.MonthlyNet {
			return r.Net2026
		}
		return r.Gross2026
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := sortValue(rows[i]), sortValue(rows[j])
		if a != b {
			return a > b
		}
		return rows[i].CustomerName < rows[j].CustomerName
	})

	return MonthlyTable{Columns: MonthlyTableColumns(), Rows: rows, SortKey: sortKey}
}

func firstNonEmptyOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
