package analytics

// MixInput is one series feeding a category-mix table: a label and the rows
// the series totals are drawn from.
type MixInput[T any] struct {
	Label string
	Rows  []T
}

// MixRow is one category's share of each series total.
type MixRow struct {
	Name   string
	Shares []float64
}

// MixTable is the category-mix percentage table: one row per category, one
// share column per series. Shares are fractions of the series grand total,
// not per-category totals.
type MixTable struct {
	SeriesLabels []string
	Rows         []MixRow
	Totals       []float64
}

// CategoryMix computes each category's share of every series total. A
// series with a zero grand total contributes 0 shares, never NaN.
func CategoryMix[T any](categories []string, series []MixInput[T], group func(T) string, metric func(T) float64) MixTable {
	table := MixTable{
		SeriesLabels: make([]string, len(series)),
		Totals:       make([]float64, len(series)),
	}

	sums := make([]map[string]float64, len(series))
	for i, s := range series {
		table.SeriesLabels[i] = s.Label
		table.Totals[i] = SumMetric(s.Rows, metric)
		sums[i] = make(map[string]float64)
		for _, r := range s.Rows {
			sums[i][group(r)] += metric(r)
		}
	}

	for _, c := range categories {
		row := MixRow{Name: c, Shares: make([]float64, len(series))}
		for i := range series {
			row.Shares[i] = Share(sums[i][c], table.Totals[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// Share returns value/total guarded against a zero or undefined
// denominator: it yields 0, never NaN or infinity.
func Share(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}

// YoYSeries computes period-over-period percent change for consecutive
// totals. The result for the first period, or for any period whose prior
// total is zero, is nil: undefined, rendered blank, never a division by
// zero.
func YoYSeries(totals []float64) []*float64 {
	out := make([]*float64, len(totals))
	for i := 1; i < len(totals); i++ {
		prev := totals[i-1]
		if prev == 0 {
			continue
		}
		change := (totals[i] - prev) / prev
		out[i] = &change
	}
	return out
}
