package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

func gross(r model.SalesRecord) float64 { return r.Sales2025EstGross.Float() }
func region(r model.SalesRecord) string { return r.Region }

func TestAggregateByEndToEndExample(t *testing.T) {
	records := []model.SalesRecord{
		{Region: "EU", CustomerCategory: "A", Sales2025EstGross: 1000},
		{Region: "US", CustomerCategory: "B", Sales2025EstGross: 3000},
	}

	got := AggregateBy(records, region, gross)
	assert.ElementsMatch(t, []NamedValue{
		{Name: "EU", Value: 1000},
		{Name: "US", Value: 3000},
	}, got)

	assert.InDelta(t, 4000.0, SumMetric(records, gross), 1e-9)
}

func TestAggregateByConservesTotal(t *testing.T) {
	records := []model.SalesRecord{
		{Region: "EU", Sales2025EstGross: 100},
		{Region: "US", Sales2025EstGross: 250},
		{Region: "EU", Sales2025EstGross: -40},
		{Region: "", Sales2025EstGross: 15},
		{Region: "APAC", Sales2025EstGross: 0},
	}

	groups := AggregateBy(records, region, gross)
	assert.InDelta(t, SumMetric(records, gross), Total(groups), 1e-9)
}

func TestAggregateByFirstSeenOrderAndUnknown(t *testing.T) {
	records := []model.SalesRecord{
		{Region: "US", Sales2025EstGross: 1},
		{Region: "EU", Sales2025EstGross: 2},
		{Region: "US", Sales2025EstGross: 3},
		{Region: "", Sales2025EstGross: 4},
	}

	got := AggregateBy(records, region, gross)
	require.Len(t, got, 3)
	assert.Equal(t, NamedValue{Name: "US", Value: 4}, got[0])
	assert.Equal(t, NamedValue{Name: "EU", Value: 2}, got[1])
	assert.Equal(t, NamedValue{Name: "Unknown", Value: 4}, got[2])
}

func TestSortDescDeterministicTies(t *testing.T) {
	in := []NamedValue{
		{Name: "b", Value: 10},
		{Name: "a", Value: 10},
		{Name: "c", Value: 20},
	}
	got := SortDesc(in)
	assert.Equal(t, []NamedValue{
		{Name: "c", Value: 20},
		{Name: "a", Value: 10},
		{Name: "b", Value: 10},
	}, got)
	// Input untouched.
	assert.Equal(t, "b", in[0].Name)
}

func TestPositiveOnly(t *testing.T) {
	got := PositiveOnly([]NamedValue{
		{Name: "pos", Value: 5},
		{Name: "zero", Value: 0},
		{Name: "neg", Value: -3},
	})
	assert.Equal(t, []NamedValue{{Name: "pos", Value: 5}}, got)
}

func TestTopNWithOtherRemainder(t *testing.T) {
	values := []NamedValue{
		{Name: "a", Value: 100},
		{Name: "b", Value: 80},
		{Name: "c", Value: 30},
		{Name: "d", Value: 20},
		{Name: "e", Value: 10},
	}

	got := TopNWithOther(values, 3)
	require.Len(t, got, 4)
	assert.Equal(t, OtherBucketLabel, got[3].Name)
	// Other equals the grand total minus the kept buckets.
	assert.InDelta(t, Total(values)-(100+80+30), got[3].Value, 1e-9)
}

func TestTopNWithOtherOmitsNonPositiveBucket(t *testing.T) {
	values := []NamedValue{
		{Name: "a", Value: 100},
		{Name: "b", Value: 80},
		{Name: "c", Value: 30},
		{Name: "d", Value: -20},
		{Name: "e", Value: 5},
	}

	// Remainder is -15, so no Other bucket appears.
	got := TopNWithOther(values, 3)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.NotEqual(t, OtherBucketLabel, v.Name)
	}
}

func TestTopNWithOtherShortInput(t *testing.T) {
	values := []NamedValue{{Name: "b", Value: 1}, {Name: "a", Value: 2}}
	got := TopNWithOther(values, 5)
	assert.Equal(t, []NamedValue{{Name: "a", Value: 2}, {Name: "b", Value: 1}}, got)
}

func TestUniqueSorted(t *testing.T) {
	got := UniqueSorted([]string{"US", "EU", ""}, []string{"EU", "APAC"})
	assert.Equal(t, []string{"APAC", "EU", "US"}, got)
}
