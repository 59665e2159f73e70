package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

func testPayload() *model.Payload {
	return &model.Payload{
		Records: []model.SalesRecord{
			{
				CustomerCode: "C1", CustomerName: "Trading House Askona LLC",
				CustomerNameNormalized: "ASKONA", CustomerCategory: "Furniture", Region: "EU",
				Sales2025EstGross: 1000,
			},
			{
				CustomerCode: "C2", CustomerName: "Acme GmbH",
				CustomerNameNormalized: "Acme GmbH", CustomerCategory: "Retail", Region: "US",
				Sales2025EstGross: 3000,
			},
		},
		MonthlyData: model.MonthlyData{
			Actual: []model.MonthlyRecord{
				{CustomerCode: "C1", CustomerName: "A Trade LLC", Year: 2026, Month: 1, Gross: 100, Net: 80},
				{CustomerCode: "C1", CustomerName: "A Trade LLC", Year: 2026, Month: 2, Gross: 120, Net: 95},
				{CustomerCode: "C3", CustomerName: "Mystery Corp", Year: 2026, Month: 2, Gross: 50, Net: 40},
				{CustomerCode: "C1", CustomerName: "A Trade LLC", Year: 2025, Month: 1, Gross: 90, Net: 70},
			},
			Forecast: []model.MonthlyRecord{
				{CustomerCode: "C1", CustomerName: "A Trade LLC", Month: 1, Gross: 110, Net: 85},
				{CustomerCode: "C4", CustomerName: "Mapped Only", Month: 2, Gross: 30, Net: 20},
			},
		},
		CustomerMap: model.CustomerMap{Map: map[string]model.CustomerMeta{
			"row1": {CustomerCode: "C3", CustomerName: "Mystery Corp", CustomerCategory: "Services", Region: "APAC"},
			"row2": {CustomerCode: "C4", CustomerName: "Mapped Only", CustomerCategory: "Wholesale", Region: "EU"},
			// Conflicts with the yearly record for C1; the yearly record wins.
			"row3": {CustomerCode: "C1", CustomerName: "Trading House Askona LLC", CustomerCategory: "WRONG", Region: "WRONG"},
		}},
	}
}

func TestNewAssignsRecordIDs(t *testing.T) {
	d := New(testPayload())
	require.Len(t, d.Records, 2)
	assert.Equal(t, 1, d.Records[0].ID)
	assert.Equal(t, 2, d.Records[1].ID)
}

func TestBackfillPrefersYearlyRecordOverCustomerMap(t *testing.T) {
	d := New(testPayload())

	var c1 model.MonthlyRecord
	for _, r := range d.MonthlyActual {
		if r.CustomerCode == "C1" && r.Year == 2026 && r.Month == 1 {
			c1 = r
		}
	}
	assert.Equal(t, "ASKONA", c1.CustomerNameNormalized)
	assert.Equal(t, "Furniture", c1.CustomerCategory)
	assert.Equal(t, "EU", c1.Region)
}

func TestBackfillFallsBackToCustomerMapByCode(t *testing.T) {
	d := New(testPayload())

	var c3 model.MonthlyRecord
	for _, r := range d.MonthlyActual {
		if r.CustomerCode == "C3" {
			c3 = r
		}
	}
	assert.Equal(t, "Services", c3.CustomerCategory)
	assert.Equal(t, "APAC", c3.Region)
}

func TestBackfillForecastPinsYear(t *testing.T) {
	d := New(testPayload())
	require.NotEmpty(t, d.MonthlyForecast)
	for _, r := range d.MonthlyForecast {
		assert.Equal(t, 2026, r.Year)
		assert.True(t, r.Forecast)
	}
}

func TestBackfillForecastOwnFieldsWin(t *testing.T) {
	p := testPayload()
	p.MonthlyData.Forecast = append(p.MonthlyData.Forecast, model.MonthlyRecord{
		CustomerCode: "C1", CustomerName: "A Trade LLC", Month: 3,
		CustomerCategory: "Special", Region: "MEA",
	})
	d := New(p)

	var own model.MonthlyRecord
	for _, r := range d.MonthlyForecast {
		if r.Month == 3 {
			own = r
		}
	}
	assert.Equal(t, "Special", own.CustomerCategory)
	assert.Equal(t, "MEA", own.Region)
	// Name normalization still resolves through the index.
	assert.Equal(t, "ASKONA", own.CustomerNameNormalized)
}

func TestBackfillUnknownCustomer(t *testing.T) {
	p := testPayload()
	p.MonthlyData.Actual = append(p.MonthlyData.Actual, model.MonthlyRecord{
		CustomerCode: "C99", CustomerName: "", Year: 2026, Month: 1, Gross: 5,
	})
	d := New(p)

	var unknown model.MonthlyRecord
	for _, r := range d.MonthlyActual {
		if r.CustomerCode == "C99" {
			unknown = r
		}
	}
	assert.Equal(t, "Unknown", unknown.CustomerNameNormalized)
	assert.Equal(t, "Unknown", unknown.CustomerCategory)
	assert.Equal(t, "Unknown", unknown.Region)
}

func TestAvailableMonths(t *testing.T) {
	d := New(testPayload())
	// Only 2026 actual months count; the 2025 row must not contribute.
	assert.Equal(t, []int{1, 2}, d.AvailableMonths())
}

func TestDefaultMonth(t *testing.T) {
	d := New(testPayload())

	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, d.DefaultMonth(feb))

	// Month without data: latest available wins.
	july := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, d.DefaultMonth(july))

	empty := New(&model.Payload{})
	assert.Equal(t, 0, empty.DefaultMonth(feb))
}

func TestPeriodSelectors(t *testing.T) {
	d := New(testPayload())

	assert.Len(t, d.Actual(2026, 1), 1)
	assert.Len(t, d.Actual(2026, 2), 2)
	assert.Len(t, d.Actual(2025, 1), 1)
	assert.Len(t, d.ActualYTD(2026, 2), 3)
	assert.Len(t, d.ForecastMonth(1), 1)
	assert.Len(t, d.ForecastYTD(2), 2)
}

func TestSelectorOptionLists(t *testing.T) {
	d := New(testPayload())

	assert.Equal(t, []string{"EU", "US"}, d.Regions())
	assert.Equal(t, []string{"Furniture", "Retail"}, d.Categories())
	assert.Equal(t, []string{"ASKONA", "Acme GmbH"}, d.Customers())

	// Monthly options come from 2026 actual rows only.
	assert.Equal(t, []string{"APAC", "EU"}, d.MonthlyRegions())
	assert.Equal(t, []string{"Furniture", "Services"}, d.MonthlyCategories())
	assert.Equal(t, []string{"ASKONA", "Mystery Corp"}, d.MonthlyCustomers())
}
