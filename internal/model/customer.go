package model

// CustomerMeta is the authoritative descriptive metadata for one customer,
// used to backfill monthly rows that arrive without category or region.
type CustomerMeta struct {
	CustomerCode           string `json:"customer_code"`
	CustomerName           string `json:"customer_name"`
	CustomerNameNormalized string `json:"customer_name_normalized,omitempty"`
	CustomerCategory       string `json:"customer_category,omitempty"`
	Region                 string `json:"region,omitempty"`
}

// CustomerMap wraps the customer metadata lookup. The map key is opaque;
// entries are matched by composite customer key or bare code, never by the
// map key itself.
type CustomerMap struct {
	Map map[string]CustomerMeta `json:"map"`
}
