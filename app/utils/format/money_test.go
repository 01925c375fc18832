package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRupee(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234", "₹1,234.00"},
		{"1234.5", "₹1,234.50"},
		{"0", "₹0.00"},
		{"999999.99", "₹999,999.99"},
	}

	for _, tt := range tests {
		amount, _ := decimal.NewFromString(tt.in)
		if got := Rupee(amount); got != tt.want {
			t.Errorf("Rupee(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
