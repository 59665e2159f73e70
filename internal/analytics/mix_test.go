package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

func TestShareZeroGuard(t *testing.T) {
	assert.InDelta(t, 0.25, Share(25, 100), 1e-9)
	assert.Zero(t, Share(25, 0))
	assert.Zero(t, Share(0, 0))
	assert.Zero(t, Share(-10, 0))
}

func TestYoYSeries(t *testing.T) {
	got := YoYSeries([]float64{100, 150, 120})
	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	require.NotNil(t, got[1])
	assert.InDelta(t, 0.5, *got[1], 1e-9)
	require.NotNil(t, got[2])
	assert.InDelta(t, -0.2, *got[2], 1e-9)
}

func TestYoYSeriesZeroPriorIsUndefined(t *testing.T) {
	got := YoYSeries([]float64{0, 100, 200})
	require.Len(t, got, 3)
	// Division by a zero prior renders blank, never infinity.
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.InDelta(t, 1.0, *got[2], 1e-9)
}

func TestCategoryMixSharesOfSeriesTotals(t *testing.T) {
	rowsA := []model.MonthlyRecord{
		{CustomerCategory: "Furniture", Gross: 60},
		{CustomerCategory: "Retail", Gross: 40},
	}
	rowsB := []model.MonthlyRecord{
		{CustomerCategory: "Furniture", Gross: 10},
		{CustomerCategory: "Retail", Gross: 30},
	}

	category := func(r model.MonthlyRecord) string { return r.CustomerCategory }
	grossOf := func(r model.MonthlyRecord) float64 { return r.Gross.Float() }

	mix := CategoryMix([]string{"Furniture", "Retail"}, []MixInput[model.MonthlyRecord]{
		{Label: "A", Rows: rowsA},
		{Label: "B", Rows: rowsB},
	}, category, grossOf)

	assert.Equal(t, []string{"A", "B"}, mix.SeriesLabels)
	require.Len(t, mix.Rows, 2)
	assert.InDelta(t, 0.6, mix.Rows[0].Shares[0], 1e-9)
	assert.InDelta(t, 0.25, mix.Rows[0].Shares[1], 1e-9)
	assert.InDelta(t, 0.4, mix.Rows[1].Shares[0], 1e-9)
	assert.InDelta(t, 0.75, mix.Rows[1].Shares[1], 1e-9)

	// Shares within each series column sum to 1 when every category is listed.
	for col := range mix.SeriesLabels {
		var sum float64
		for _, row := range mix.Rows {
			sum += row.Shares[col]
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestCategoryMixEmptySeries(t *testing.T) {
	category := func(r model.MonthlyRecord) string { return r.CustomerCategory }
	grossOf := func(r model.MonthlyRecord) float64 { return r.Gross.Float() }

	mix := CategoryMix([]string{"Furniture"}, []MixInput[model.MonthlyRecord]{
		{Label: "Empty", Rows: nil},
	}, category, grossOf)

	require.Len(t, mix.Rows, 1)
	assert.Zero(t, mix.Rows[0].Shares[0])
	assert.Zero(t, mix.Totals[0])
}
