package dataset

import (
	"strings"

	"github.com/salescope/salescope/internal/model"
)

// rowMeta is the descriptive metadata resolved for a monthly row.
type rowMeta struct {
	normalized string
	category   string
	region     string
}

// metaIndex resolves customer metadata by composite key, falling back to
// bare customer code. Yearly records take precedence over customer-map
// entries; the bare-code index comes from the customer map only.
type metaIndex struct {
	byKey  map[string]rowMeta
	byCode map[string]rowMeta
}

func buildMetaIndex(records []model.SalesRecord, cm model.CustomerMap) *metaIndex {
	idx := &metaIndex{
		byKey:  make(map[string]rowMeta),
		byCode: make(map[string]rowMeta),
	}

	for _, r := range records {
		name := r.CustomerNameNormalized
		if name == "" {
			name = r.CustomerName
		}
		key := CustomerKey(r.CustomerCode, name)
		idx.byKey[key] = rowMeta{
			normalized: firstNonEmpty(r.CustomerNameNormalized, NormalizeCustomerName(r.CustomerName)),
			category:   firstNonEmpty(r.CustomerCategory, "Unknown"),
			region:     firstNonEmpty(r.Region, "Unknown"),
		}
	}

	for _, row := range cm.Map {
		meta := rowMeta{
			normalized: firstNonEmpty(row.CustomerNameNormalized, NormalizeCustomerName(row.CustomerName)),
			category:   firstNonEmpty(row.CustomerCategory, "Unknown"),
			region:     firstNonEmpty(row.Region, "Unknown"),
		}
		key := CustomerKey(row.CustomerCode, row.CustomerName)
		if _, ok := idx.byKey[key]; !ok {
			idx.byKey[key] = meta
		}
		code := strings.TrimSpace(row.CustomerCode)
		if code != "" {
			if _, ok := idx.byCode[code]; !ok {
				idx.byCode[code] = meta
			}
		}
	}

	return idx
}

func (idx *metaIndex) lookup(code, normalizedName string) (rowMeta, bool) {
	if meta, ok := idx.byKey[CustomerKey(code, normalizedName)]; ok {
		return meta, true
	}
	if meta, ok := idx.byCode[strings.TrimSpace(code)]; ok {
		return meta, true
	}
	return rowMeta{}, false
}

// backfillActual resolves normalized name, category and region for actual
// monthly rows. Precedence: composite-key match, bare-code match, "Unknown".
func backfillActual(rows []model.MonthlyRecord, idx *metaIndex) []model.MonthlyRecord {
	out := make([]model.MonthlyRecord, 0, len(rows))
	for _, r := range rows {
		normName := NormalizeCustomerName(r.CustomerName)
		meta, _ := idx.lookup(r.CustomerCode, normName)

		r.CustomerNameNormalized = firstNonEmpty(meta.normalized, normName, "Unknown")
		r.CustomerCategory = firstNonEmpty(meta.category, "Unknown")
		r.Region = firstNonEmpty(meta.region, "Unknown")
		r.Forecast = false
		out = append(out, r)
	}
	return out
}

// backfillForecast is backfillActual for forecast rows, with two quirks kept
// from the data contract: a forecast row's own category/region win over the
// index, and forecast rows are always pinned to year 2026.
func backfillForecast(rows []model.MonthlyRecord, idx *metaIndex) []model.MonthlyRecord {
	out := make([]model.MonthlyRecord, 0, len(rows))
	for _, r := range rows {
		normName := NormalizeCustomerName(r.CustomerName)
		meta, _ := idx.lookup(r.CustomerCode, normName)

		r.Year = 2026
		r.CustomerNameNormalized = firstNonEmpty(meta.normalized, normName, "Unknown")
		r.CustomerCategory = firstNonEmpty(r.CustomerCategory, meta.category, "Unknown")
		r.Region = firstNonEmpty(r.Region, meta.region, "Unknown")
		r.Forecast = true
		out = append(out, r)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
