package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency formats a monetary amount as whole euros with thousands
// separators, matching the dashboard's display convention.
func Currency(v float64) string {
	rounded := int64(math.Round(v))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + "€" + groupThousands(rounded)
}

// FormatShort compresses an amount for chart-style labels: two decimals in
// millions, whole thousands with a K suffix, whole units below that.
func FormatShort(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 2, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 0, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

// Percent formats a fraction as a percentage with one decimal.
func Percent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

// SignedShort is FormatShort with an explicit plus sign on positive values,
// for delta annotations.
func SignedShort(v float64) string {
	if v > 0 {
		return "+" + FormatShort(v)
	}
	return FormatShort(v)
}

// TableMeta renders the "N rows, sorted by key (desc)" line shown under
// data tables.
func TableMeta(rows int, sortKey string, desc bool) string {
	order := "asc"
	if desc {
		order = "desc"
	}
	if sortKey == "" {
		return MetaStyle.Render(fmt.Sprintf("%d rows", rows))
	}
	return MetaStyle.Render(fmt.Sprintf("%d rows, sorted by %s (%s)", rows, sortKey, order))
}

func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
