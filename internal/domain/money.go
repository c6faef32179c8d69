package domain

import "github.com/shopspring/decimal"

// Cart and draft quantities stay inside this closed range.
const (
	MinQuantity = 1
	MaxQuantity = 5
)

// FormatCurrency renders an amount in USD, e.g. "$12.50" or "-$3.00".
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// LineTotal is price times quantity for one cart line.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.MenuItem.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
