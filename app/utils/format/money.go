package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupee = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// Rupee renders an amount for user-facing text such as notification
// messages ("₹1,234.00").
func Rupee(amount decimal.Decimal) string {
	return rupee.FormatMoneyDecimal(amount)
}
