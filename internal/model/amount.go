package model

import (
	"bytes"
	"strconv"
	"strings"
)

// Amount is a monetary value in EUR.
//
// It decodes leniently: JSON null, missing fields, numeric strings and
// outright garbage all coerce to 0 instead of failing the load. Sparse
// source data is expected and is a leniency policy, not an error path.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler with coerce-to-zero semantics.
// It never returns an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	if raw == "" {
		*a = 0
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*a = 0
		return nil
	}

	*a = Amount(v)
	return nil
}

// Float returns the amount as a plain float64.
func (a Amount) Float() float64 {
	return float64(a)
}
