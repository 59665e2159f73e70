// Package dataset canonicalizes raw payload rows into the immutable record
// collections the dashboard aggregates over.
package dataset

import "strings"

// nameAliases collapses known customer-name variants to one canonical form.
// Comparison is against the trimmed, upper-cased input. Extend by adding
// entries here.
var nameAliases = map[string]string{
	"TRADING HOUSE ASKONA LLC":        "ASKONA",
	"A TRADE LLC":                     "ASKONA",
	"BED QUARTER FURNITURE TRADING":   "BED QUARTER",
	"BED QUARTER COMPANY FOR TRADING": "BED QUARTER",
}

// NormalizeCustomerName returns the canonical display name for a raw
// customer name: aliased variants collapse to their canonical form, anything
// else passes through trimmed with its original casing. Idempotent.
func NormalizeCustomerName(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := nameAliases[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// CustomerKey builds the composite identity key used throughout the
// aggregation engine. The "||" separator does not occur in legitimate
// customer codes.
func CustomerKey(code, name string) string {
	return strings.TrimSpace(code) + "||" + NormalizeCustomerName(name)
}
