package upi

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// BuildPayLink assembles a upi://pay deep link for the manual payment
// path. The amount is rendered without trailing zeros so ₹200.00 shows
// up as am=200, which is what UPI apps expect.
func BuildPayLink(vpa, payeeName string, amount decimal.Decimal, note string) string {
	params := url.Values{}
	params.Set("pa", vpa)
	params.Set("pn", payeeName)
	params.Set("am", amount.String())
	params.Set("cu", "INR")
	if note != "" {
		params.Set("tn", note)
	}
	return "upi://pay?" + params.Encode()
}
