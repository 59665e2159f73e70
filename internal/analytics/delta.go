package analytics

import (
	"math"
	"sort"
)

// Direction selects which sign of period-over-period delta a ranking keeps.
type Direction int

// Ranking directions.
const (
	DirectionUp Direction = iota
	DirectionDown
)

// DeltaRow is one customer's base and compare totals with their difference.
type DeltaRow struct {
	Name    string
	Base    float64
	Compare float64
	Delta   float64
}

// TopDelta groups rows by name, sums the base and compare metrics
// independently, drops groups below either noise threshold, keeps only
// deltas matching the direction, and returns the topN largest by |delta|.
func TopDelta[T any](rows []T, name func(T) string, base, compare func(T) float64, minBase, minCompare float64, topN int, dir Direction) []DeltaRow {
	type sums struct {
		base    float64
		compare float64
	}
	index := make(map[string]int)
	var names []string
	totals := make([]sums, 0)

	for _, r := range rows {
		n := name(r)
		if n == "" {
			n = "Unknown"
		}
		i, ok := index[n]
		if !ok {
			i = len(names)
			index[n] = i
			names = append(names, n)
			totals = append(totals, sums{})
		}
		totals[i].base += base(r)
		totals[i].compare += compare(r)
	}

	var out []DeltaRow
	for i, n := range names {
		t := totals[i]
		if t.base < minBase || t.compare < minCompare {
			continue
		}
		out = append(out, DeltaRow{
			Name:    n,
			Base:    t.base,
			Compare: t.compare,
			Delta:   t.compare - t.base,
		})
	}

	return rankDeltas(out, topN, dir)
}

// CustomerTotals pre-aggregates a metric by customer name, for delta
// rankings that span multiple source collections.
func CustomerTotals[T any](rows []T, name func(T) string, metric func(T) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range rows {
		n := name(r)
		if n == "" {
			n = "Unknown"
		}
		out[n] += metric(r)
	}
	return out
}

// TopDeltaFromMaps ranks deltas between two pre-aggregated customer maps.
// When fillToTopN is set and the sign-filtered ranking comes up short, the
// remaining highest-|delta| entries of either sign backfill the tail, never
// duplicating an entry already included.
func TopDeltaFromMaps(baseMap, compareMap map[string]float64, topN int, dir Direction, fillToTopN bool) []DeltaRow {
	names := make(map[string]bool, len(baseMap)+len(compareMap))
	for n := range baseMap {
		names[n] = true
	}
	for n := range compareMap {
		names[n] = true
	}

	all := make([]DeltaRow, 0, len(names))
	for n := range names {
		base := baseMap[n]
		compare := compareMap[n]
		all = append(all, DeltaRow{
			Name:    n,
			Base:    base,
			Compare: compare,
			Delta:   compare - base,
		})
	}

	ranked := rankDeltas(all, topN, dir)
	if !fillToTopN || len(ranked) >= topN {
		return ranked
	}

	existing := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		existing[r.Name] = true
	}

	fallback := make([]DeltaRow, len(all))
	copy(fallback, all)
	sort.SliceStable(fallback, func(i, j int) bool {
		ai, aj := math.Abs(fallback[i].Delta), math.Abs(fallback[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return fallback[i].Name < fallback[j].Name
	})

	for _, r := range fallback {
		if len(ranked) >= topN {
			break
		}
		if existing[r.Name] {
			continue
		}
		ranked = append(ranked, r)
	}
	return ranked
}

// rankDeltas sign-filters by direction, sorts by |delta| descending (name
// ascending on ties) and truncates to topN.
func rankDeltas(rows []DeltaRow, topN int, dir Direction) []DeltaRow {
	var out []DeltaRow
	for _, r := range rows {
		if dir == DirectionUp && r.Delta > 0 {
			out = append(out, r)
		}
		if dir == DirectionDown && r.Delta < 0 {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Delta), math.Abs(out[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
