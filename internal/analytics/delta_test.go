package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

func deltaRecords() []model.SalesRecord {
	return []model.SalesRecord{
		{CustomerNameNormalized: "Grower", Sales2024Gross: 50_000, Sales2025EstGross: 90_000},
		{CustomerNameNormalized: "Shrinker", Sales2024Gross: 80_000, Sales2025EstGross: 40_000},
		{CustomerNameNormalized: "Flat", Sales2024Gross: 30_000, Sales2025EstGross: 30_000},
		{CustomerNameNormalized: "Tiny", Sales2024Gross: 500, Sales2025EstGross: 25_000},
	}
}

func TestTopDeltaSignFilter(t *testing.T) {
	records := deltaRecords()
	name := func(r model.SalesRecord) string { return r.CustomerNameNormalized }
	base := func(r model.SalesRecord) float64 { return r.Sales2024Gross.Float() }
	compare := func(r model.SalesRecord) float64 { return r.Sales2025EstGross.Float() }

	up := TopDelta(records, name, base, compare, 10_000, 10_000, 10, DirectionUp)
	require.Len(t, up, 1)
	assert.Equal(t, "Grower", up[0].Name)
	for _, r := range up {
		assert.Greater(t, r.Delta, 0.0)
	}

	down := TopDelta(records, name, base, compare, 10_000, 10_000, 10, DirectionDown)
	require.Len(t, down, 1)
	assert.Equal(t, "Shrinker", down[0].Name)
	for _, r := range down {
		assert.Less(t, r.Delta, 0.0)
	}
}

func TestTopDeltaNoiseThreshold(t *testing.T) {
	records := deltaRecords()
	name := func(r model.SalesRecord) string { return r.CustomerNameNormalized }
	base := func(r model.SalesRecord) float64 { return r.Sales2024Gross.Float() }
	compare := func(r model.SalesRecord) float64 { return r.Sales2025EstGross.Float() }

	// Tiny's 2024 base of 500 is below the threshold even though its 2025
	// value is not.
	up := TopDelta(records, name, base, compare, 10_000, 10_000, 10, DirectionUp)
	for _, r := range up {
		assert.NotEqual(t, "Tiny", r.Name)
	}
}

func TestTopDeltaSumsPerName(t *testing.T) {
	records := []model.SalesRecord{
		{CustomerNameNormalized: "Split", Sales2024Gross: 20_000, Sales2025EstGross: 35_000},
		{CustomerNameNormalized: "Split", Sales2024Gross: 15_000, Sales2025EstGross: 25_000},
	}
	name := func(r model.SalesRecord) string { return r.CustomerNameNormalized }
	base := func(r model.SalesRecord) float64 { return r.Sales2024Gross.Float() }
	compare := func(r model.SalesRecord) float64 { return r.Sales2025EstGross.Float() }

	up := TopDelta(records, name, base, compare, 10_000, 10_000, 10, DirectionUp)
	require.Len(t, up, 1)
	assert.InDelta(t, 35_000.0, up[0].Base, 1e-9)
	assert.InDelta(t, 60_000.0, up[0].Compare, 1e-9)
	assert.InDelta(t, 25_000.0, up[0].Delta, 1e-9)
}

func TestTopDeltaFromMapsRanksAbsDelta(t *testing.T) {
	base := map[string]float64{"a": 100, "b": 200, "c": 50}
	compare := map[string]float64{"a": 400, "b": 250, "d": 75}

	up := TopDeltaFromMaps(base, compare, 2, DirectionUp, false)
	require.Len(t, up, 2)
	assert.Equal(t, "a", up[0].Name)
	assert.InDelta(t, 300.0, up[0].Delta, 1e-9)
	// "d" only exists in the compare map; its base is implicitly zero.
	assert.Equal(t, "d", up[1].Name)
}

func TestTopDeltaFromMapsFillBackfillsWithoutDuplicates(t *testing.T) {
	base := map[string]float64{"down1": 100, "down2": 90, "up1": 10}
	compare := map[string]float64{"down1": 40, "down2": 60, "up1": 500}

	// Only two genuine decreases exist; fill pads with the remaining
	// highest-|delta| entry regardless of sign.
	rows := TopDeltaFromMaps(base, compare, 3, DirectionDown, true)
	require.Len(t, rows, 3)
	assert.Equal(t, "down1", rows[0].Name)
	assert.Equal(t, "down2", rows[1].Name)
	assert.Equal(t, "up1", rows[2].Name)

	seen := map[string]int{}
	for _, r := range rows {
		seen[r.Name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "duplicate %s", name)
	}
}

func TestTopDeltaFromMapsNoFillStaysShort(t *testing.T) {
	base := map[string]float64{"x": 10}
	compare := map[string]float64{"x": 50}

	rows := TopDeltaFromMaps(base, compare, 5, DirectionDown, false)
	assert.Empty(t, rows)
}

func TestRankOrderIsAbsDeltaDescending(t *testing.T) {
	base := map[string]float64{"small": 0, "big": 0, "mid": 0}
	compare := map[string]float64{"small": 5, "big": 500, "mid": 50}

	rows := TopDeltaFromMaps(base, compare, 10, DirectionUp, false)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, math.Abs(rows[i-1].Delta), math.Abs(rows[i].Delta))
	}
}
