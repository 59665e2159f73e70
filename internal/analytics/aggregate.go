package analytics

import "sort"

// NamedValue is one aggregation group: a label and its summed value.
type NamedValue struct {
	Name  string
	Value float64
}

// OtherBucketLabel names the synthetic rollup group for entries outside a
// top-N cutoff.
const OtherBucketLabel = "Other small customers"

// SumMetric sums metric over rows. Empty input yields 0.
func SumMetric[T any](rows []T, metric func(T) float64) float64 {
	var total float64
	for _, r := range rows {
		total += metric(r)
	}
	return total
}

// AggregateBy groups rows by the group accessor, summing metric per group.
// Groups appear in first-seen order; callers impose their own sort.
func AggregateBy[T any](rows []T, group func(T) string, metric func(T) float64) []NamedValue {
	index := make(map[string]int)
	var out []NamedValue
	for _, r := range rows {
		name := group(r)
		if name == "" {
			name = "Unknown"
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, NamedValue{Name: name})
		}
		out[i].Value += metric(r)
	}
	return out
}

// SortDesc returns a copy sorted by value descending, name ascending on
// ties so output is deterministic.
func SortDesc(values []NamedValue) []NamedValue {
	out := make([]NamedValue, len(values))
	copy(out, values)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// PositiveOnly returns the entries with a value greater than zero,
// preserving order.
func PositiveOnly(values []NamedValue) []NamedValue {
	out := make([]NamedValue, 0, len(values))
	for _, v := range values {
		if v.Value > 0 {
			out = append(out, v)
		}
	}
	return out
}

// TopN returns the n largest entries by value.
func TopN(values []NamedValue, n int) []NamedValue {
	sorted := SortDesc(values)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopNWithOther keeps the top n groups by value and rolls the remainder
// into a single "Other small customers" bucket. The bucket is omitted when
// its total is not positive, so a clean top-N stays a clean top-N.
func TopNWithOther(values []NamedValue, n int) []NamedValue {
	sorted := SortDesc(values)
	if len(sorted) <= n {
		return sorted
	}

	var other float64
	for _, v := range sorted[n:] {
		other += v.Value
	}

	out := make([]NamedValue, 0, n+1)
	out = append(out, sorted[:n]...)
	if other > 0 {
		out = append(out, NamedValue{Name: OtherBucketLabel, Value: other})
	}
	return out
}

// Total sums the values of a group set.
func Total(values []NamedValue) float64 {
	var total float64
	for _, v := range values {
		total += v.Value
	}
	return total
}

// UniqueSorted deduplicates the non-empty strings across the given lists
// and returns them sorted.
func UniqueSorted(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
