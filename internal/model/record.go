// Package model defines the sales dataset records and the combined payload
// document exchanged between the build tool and the dashboard.
package model

// SalesRecord is a single yearly sales row for one customer.
// Records are immutable after load; ID is the insertion index.
type SalesRecord struct {
	CustomerCode           string `json:"customer_code"`
	CustomerName           string `json:"customer_name"`
	CustomerNameNormalized string `json:"customer_name_normalized,omitempty"`
	CustomerCategory       string `json:"customer_category"`
	Region                 string `json:"region"`
	Sales2024Gross         Amount `json:"sales_2024_gross"`
	Sales2024Net           Amount `json:"sales_2024_net"`
	Sales2025EstGross      Amount `json:"sales_2025_est_gross"`
	Sales2025EstNet        Amount `json:"sales_2025_est_net"`
	Sales2025Forecast      Amount `json:"sales_2025_forecast"`
	Sales2026GrossPositive Amount `json:"sales_2026_gross_positive"`
	ID                     int    `json:"-"`
}

// Metric identifies one of the six yearly metric columns.
type Metric int

// Yearly metrics, in display order.
const (
	MetricSales2024Gross Metric = iota
	MetricSales2024Net
	MetricSales2025EstGross
	MetricSales2025EstNet
	MetricSales2025Forecast
	MetricSales2026GrossPositive
)

// AllMetrics returns the yearly metrics in display order.
func AllMetrics() []Metric {
	return []Metric{
		MetricSales2024Gross,
		MetricSales2024Net,
		MetricSales2025EstGross,
		MetricSales2025EstNet,
		MetricSales2025Forecast,
		MetricSales2026GrossPositive,
	}
}

// Key returns the JSON field key for the metric.
func (m Metric) Key() string {
	switch m {
	case MetricSales2024Gross:
		return "sales_2024_gross"
	case MetricSales2024Net:
		return "sales_2024_net"
	case MetricSales2025EstGross:
		return "sales_2025_est_gross"
	case MetricSales2025EstNet:
		return "sales_2025_est_net"
	case MetricSales2025Forecast:
		return "sales_2025_forecast"
	case MetricSales2026GrossPositive:
		return "sales_2026_gross_positive"
	}
	return ""
}

// Label returns the human-readable metric label.
func (m Metric) Label() string {
	switch m {
	case MetricSales2024Gross:
		return "2024 Gross Sales"
	case MetricSales2024Net:
		return "2024 Net Sales"
	case MetricSales2025EstGross:
		return "2025 Gross Sales"
	case MetricSales2025EstNet:
		return "2025 Net Sales"
	case MetricSales2025Forecast:
		return "2025 Forecast Sales"
	case MetricSales2026GrossPositive:
		return "2026 Gross Sales Positive"
	}
	return ""
}

// MetricFromKey resolves a JSON field key back to a Metric.
func MetricFromKey(key string) (Metric, bool) {
	for _, m := range AllMetrics() {
		if m.Key() == key {
			return m, true
		}
	}
	return 0, false
}

// MetricValue returns the record's value for the given metric.
func (r SalesRecord) MetricValue(m Metric) float64 {
	switch m {
	case MetricSales2024Gross:
		return r.Sales2024Gross.Float()
	case MetricSales2024Net:
		return r.Sales2024Net.Float()
	case MetricSales2025EstGross:
		return r.Sales2025EstGross.Float()
	case MetricSales2025EstNet:
		return r.Sales2025EstNet.Float()
	case MetricSales2025Forecast:
		return r.Sales2025Forecast.Float()
	case MetricSales2026GrossPositive:
		return r.Sales2026GrossPositive.Float()
	}
	return 0
}

// Dimension identifies a grouping field shared by yearly and monthly records.
type Dimension int

// Grouping dimensions.
const (
	DimensionRegion Dimension = iota
	DimensionCategory
	DimensionCustomer
)

// GroupValue returns the record's value for the grouping dimension.
// Missing values resolve to "Unknown"; the customer dimension prefers the
// normalized name and falls back to the raw name.
func (r SalesRecord) GroupValue(d Dimension) string {
	switch d {
	case DimensionRegion:
		return orUnknown(r.Region)
	case DimensionCategory:
		return orUnknown(r.CustomerCategory)
	case DimensionCustomer:
		if r.CustomerNameNormalized != "" {
			return r.CustomerNameNormalized
		}
		return orUnknown(r.CustomerName)
	}
	return "Unknown"
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
