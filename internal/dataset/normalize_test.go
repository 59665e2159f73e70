package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCustomerName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "askona canonical", input: "Trading House Askona LLC", want: "ASKONA"},
		{name: "askona alternate", input: "A Trade LLC", want: "ASKONA"},
		{name: "askona upper", input: "TRADING HOUSE ASKONA LLC", want: "ASKONA"},
		{name: "askona padded", input: "  a trade llc  ", want: "ASKONA"},
		{name: "bed quarter", input: "Bed Quarter Furniture Trading", want: "BED QUARTER"},
		{name: "bed quarter alternate", input: "BED QUARTER COMPANY FOR TRADING", want: "BED QUARTER"},
		{name: "passthrough keeps case", input: "Acme GmbH", want: "Acme GmbH"},
		{name: "passthrough trims", input: "  Acme GmbH  ", want: "Acme GmbH"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCustomerName(tt.input))
		})
	}
}

func TestNormalizeCustomerNameIdempotent(t *testing.T) {
	inputs := []string{
		"Trading House Askona LLC",
		"Bed Quarter Furniture Trading",
		"Acme GmbH",
		"  spaced out  ",
		"",
	}
	for _, in := range inputs {
		once := NormalizeCustomerName(in)
		assert.Equal(t, once, NormalizeCustomerName(once), "input %q", in)
	}
}

func TestCustomerKey(t *testing.T) {
	assert.Equal(t, "C1||ASKONA", CustomerKey(" C1 ", "A Trade LLC"))
	assert.Equal(t, "C2||Acme GmbH", CustomerKey("C2", " Acme GmbH "))

	// Alias variants of the same customer collapse to one key.
	assert.Equal(t,
		CustomerKey("C1", "Trading House Askona LLC"),
		CustomerKey("C1", "A Trade LLC"))
}
