// Package viewmodel assembles aggregation outputs into the named display
// structures a rendering layer consumes. Everything here is plain data:
// no formatting, no terminal or chart concerns.
package viewmodel

import (
	"fmt"

	"github.com/salescope/salescope/internal/analytics"
)

// Card is one KPI card: a label and a summed currency value.
type Card struct {
	Label string
	Value float64
}

// DonutSlice is one share of a donut chart.
type DonutSlice struct {
	Name  string
	Value float64
	Share float64
}

// Series is one labeled value series in a grouped comparison.
type Series struct {
	Label  string
	Values []float64
}

// GroupedComparison is a grouped bar layout: one value per (label, series)
// pair.
type GroupedComparison struct {
	Labels []string
	Series []Series
}

// YearTotal is one year's total with its year-over-year change. YoY is nil
// for the first year and whenever the prior year's total is zero; nil
// renders blank, never 0%.
type YearTotal struct {
	Year  string
	Value float64
	YoY   *float64
}

// DeltaChart is one named delta ranking.
type DeltaChart struct {
	Title     string
	Direction analytics.Direction
	Rows      []analytics.DeltaRow
}

// Column is a table column spec for the external table renderer.
type Column struct {
	Key   string
	Label string
}

// ComparisonSummary is the three-bar period comparison with its delta
// annotations. Delta percentages are fractions and already zero-guarded.
type ComparisonSummary struct {
	Bars       []analytics.NamedValue
	VsPrior    DeltaNote
	VsForecast DeltaNote
}

// DeltaNote is one comparison annotation: absolute delta and its fraction
// of the compared-against total.
type DeltaNote struct {
	Delta float64
	Pct   float64
}

var monthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the short English month name, or "Month N" out of
// range.
func MonthName(m int) string {
	if m >= 1 && m <= 12 {
		return monthNames[m-1]
	}
	return fmt.Sprintf("Month %d", m)
}
