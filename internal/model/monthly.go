package model

// MonthlyMetric selects gross or net for monthly aggregations.
type MonthlyMetric int

// Monthly metrics.
const (
	MonthlyGross MonthlyMetric = iota
	MonthlyNet
)

// Label returns "Gross" or "Net".
func (m MonthlyMetric) Label() string {
	if m == MonthlyNet {
		return "Net"
	}
	return "Gross"
}

// MonthlyRecord is one customer-month of actual or forecast sales.
//
// Margin fields are absolute monetary amounts, not percentages; percentage
// margins are always derived at read time as margin / sales. Actual rows
// carry the *_margin_update fields, forecast rows carry gross_margin and
// net_margin. Forecast is set at load time, never parsed.
type MonthlyRecord struct {
	CustomerCode           string `json:"customer_code"`
	CustomerName           string `json:"customer_name"`
	CustomerNameNormalized string `json:"customer_name_normalized,omitempty"`
	CustomerCategory       string `json:"customer_category,omitempty"`
	Region                 string `json:"region,omitempty"`
	Year                   int    `json:"year,omitempty"`
	Month                  int    `json:"month"`
	Gross                  Amount `json:"gross"`
	Net                    Amount `json:"net"`
	GrossMarginUpdate      Amount `json:"gross_margin_update,omitempty"`
	NetMarginUpdate        Amount `json:"net_margin_update,omitempty"`
	GrossMargin            Amount `json:"gross_margin,omitempty"`
	NetMargin              Amount `json:"net_margin,omitempty"`
	Forecast               bool   `json:"-"`
}

// Value returns the gross or net sales amount.
func (r MonthlyRecord) Value(m MonthlyMetric) float64 {
	if m == MonthlyNet {
		return r.Net.Float()
	}
	return r.Gross.Float()
}

// MarginValue returns the margin amount matching the metric, reading the
// actual-update fields or the forecast fields depending on the row kind.
func (r MonthlyRecord) MarginValue(m MonthlyMetric) float64 {
	if r.Forecast {
		if m == MonthlyNet {
			return r.NetMargin.Float()
		}
		return r.GrossMargin.Float()
	}
	if m == MonthlyNet {
		return r.NetMarginUpdate.Float()
	}
	return r.GrossMarginUpdate.Float()
}

// GroupValue returns the record's value for the grouping dimension.
func (r MonthlyRecord) GroupValue(d Dimension) string {
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
