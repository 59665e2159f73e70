package dataset

import (
	"sort"
	"time"

	"github.com/salescope/salescope/internal/model"
)

// Dataset holds the canonical record collections parsed once at load time.
// Nothing mutates these slices after New returns; filtering and aggregation
// always produce new derived structures.
type Dataset struct {
	Records         []model.SalesRecord
	MonthlyActual   []model.MonthlyRecord
	MonthlyForecast []model.MonthlyRecord
}

// New builds a Dataset from a decrypted payload: yearly records get their
// insertion-index identity, monthly rows get metadata backfilled from the
// yearly records unioned with the customer map.
func New(p *model.Payload) *Dataset {
	records := make([]model.SalesRecord, len(p.Records))
	copy(records, p.Records)
	for i := range records {
		records[i].ID = i + 1
	}

	idx := buildMetaIndex(records, p.CustomerMap)

	return &Dataset{
		Records:         records,
		MonthlyActual:   backfillActual(p.MonthlyData.Actual, idx),
		MonthlyForecast: backfillForecast(p.MonthlyData.Forecast, idx),
	}
}

// Regions returns the distinct non-empty regions of the yearly records,
// sorted.
func (d *Dataset) Regions() []string {
	return uniqueSorted(d.Records, func(r model.SalesRecord) string { return r.Region })
}

// Categories returns the distinct non-empty categories of the yearly
// records, sorted.
func (d *Dataset) Categories() []string {
	return uniqueSorted(d.Records, func(r model.SalesRecord) string { return r.CustomerCategory })
}

// Customers returns the distinct non-empty normalized customer names of the
// yearly records, sorted.
func (d *Dataset) Customers() []string {
	return uniqueSorted(d.Records, func(r model.SalesRecord) string { return r.CustomerNameNormalized })
}

// MonthlyRegions, MonthlyCategories and MonthlyCustomers list selector
// options for the monthly view, drawn from the 2026 actual rows.
func (d *Dataset) MonthlyRegions() []string {
	return uniqueSorted(d.actual2026(), func(r model.MonthlyRecord) string { return r.Region })
}

func (d *Dataset) MonthlyCategories() []string {
	return uniqueSorted(d.actual2026(), func(r model.MonthlyRecord) string { return r.CustomerCategory })
}

func (d *Dataset) MonthlyCustomers() []string {
	return uniqueSorted(d.actual2026(), func(r model.MonthlyRecord) string { return r.CustomerNameNormalized })
}

func (d *Dataset) actual2026() []model.MonthlyRecord {
	var out []model.MonthlyRecord
	for _, r := range d.MonthlyActual {
		if r.Year == 2026 {
			out = append(out, r)
		}
	}
	return out
}

// AvailableMonths lists the months with 2026 actual data, ascending.
func (d *Dataset) AvailableMonths() []int {
	seen := make(map[int]bool)
	for _, r := range d.MonthlyActual {
		if r.Year == 2026 && r.Month >= 1 && r.Month <= 12 {
			seen[r.Month] = true
		}
	}
	months := make([]int, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// DefaultMonth picks the current calendar month when 2026 actuals cover it,
// otherwise the latest available month. Returns 0 when there is no monthly
// data at all.
func (d *Dataset) DefaultMonth(now time.Time) int {
	months := d.AvailableMonths()
	if len(months) == 0 {
		return 0
	}
	current := int(now.Month())
	for _, m := range months {
		if m == current {
			return m
		}
	}
	return months[len(months)-1]
}

// Actual returns the actual rows for an exact year and month.
func (d *Dataset) Actual(year, month int) []model.MonthlyRecord {
	return filterMonthly(d.MonthlyActual, func(r model.MonthlyRecord) bool {
		return r.Year == year && r.Month == month
	})
}

// ActualYTD returns the actual rows for a year up to and including month.
func (d *Dataset) ActualYTD(year, month int) []model.MonthlyRecord {
	return filterMonthly(d.MonthlyActual, func(r model.MonthlyRecord) bool {
		return r.Year == year && r.Month <= month
	})
}

// ForecastMonth returns the forecast rows for an exact month.
func (d *Dataset) ForecastMonth(month int) []model.MonthlyRecord {
	return filterMonthly(d.MonthlyForecast, func(r model.MonthlyRecord) bool {
		return r.Month == month
	})
}

// ForecastYTD returns the forecast rows up to and including month.
func (d *Dataset) ForecastYTD(month int) []model.MonthlyRecord {
	return filterMonthly(d.MonthlyForecast, func(r model.MonthlyRecord) bool {
		return r.Month <= month
	})
}

func filterMonthly(rows []model.MonthlyRecord, keep func(model.MonthlyRecord) bool) []model.MonthlyRecord {
	var out []model.MonthlyRecord
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func uniqueSorted[T any](rows []T, value func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
