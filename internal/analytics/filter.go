// Package analytics implements the pure filtering and aggregation engine
// the view models are built from. Every function here is total: it never
// mutates its input, never errors, and yields zero values on empty input.
package analytics

import (
	"strings"

	"github.com/salescope/salescope/internal/model"
)

// All is the sentinel criterion value meaning "no filter".
const All = "All"

// Criteria is the immutable filter state for one render. Each non-sentinel
// field is a conjunctive predicate.
type Criteria struct {
	Region     string
	Category   string
	Customer   string
	SearchText string
}

// DefaultCriteria matches every record.
func DefaultCriteria() Criteria {
	return Criteria{Region: All, Category: All, Customer: All}
}

// FilterRecords returns the yearly records matching the criteria, preserving
// the original relative order.
func FilterRecords(records []model.SalesRecord, c Criteria) []model.SalesRecord {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))
	out := make([]model.SalesRecord, 0, len(records))
	for _, r := range records {
		if c.Region != "" && c.Region != All && r.Region != c.Region {
			continue
		}
		if c.Category != "" && c.Category != All && r.CustomerCategory != c.Category {
			continue
		}
		if c.Customer != "" && c.Customer != All && r.CustomerNameNormalized != c.Customer {
			continue
		}
		if search != "" {
			hay := strings.ToLower(strings.Join([]string{
				r.CustomerCode,
				r.CustomerName,
				r.CustomerNameNormalized,
				r.CustomerCategory,
				r.Region,
			}, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// FilterMonthly returns the monthly rows matching the criteria, preserving
// order. The same engine serves both dashboard views; the monthly view
// simply never sets SearchText.
func FilterMonthly(rows []model.MonthlyRecord, c Criteria) []model.MonthlyRecord {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))
	out := make([]model.MonthlyRecord, 0, len(rows))
	for _, r := range rows {
		if c.Region != "" && c.Region != All && r.Region != c.Region {
			continue
		}
		if c.Category != "" && c.Category != All && r.CustomerCategory != c.Category {
			continue
		}
		if c.Customer != "" && c.Customer != All && r.CustomerNameNormalized != c.Customer {
			continue
		}
		if search != "" {
			hay := strings.ToLower(strings.Join([]string{
				r.CustomerCode,
				r.CustomerName,
				r.CustomerNameNormalized,
				r.CustomerCategory,
				r.Region,
			}, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
