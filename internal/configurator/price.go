package configurator

import "github.com/shopspring/decimal"

// TotalPrice computes base price plus the surcharge of every selected option,
// multiplied by quantity. Sums stay exact decimals; nothing rounds before the
// final multiply.
func TotalPrice(product Product, groups []OptionGroup, sel *SelectionSet, quantity int) decimal.Decimal {
	total := product.BasePrice
	if sel != nil {
		for _, group := range groups {
			for _, opt := range group.Options {
				if sel.Has(opt.ID) {
					total = total.Add(opt.AdditionalPrice)
				}
			}
		}
	}
	return total.Mul(decimal.NewFromInt(int64(ClampQuantity(quantity))))
}

// ClampQuantity keeps quantity at a minimum of 1. Decrementing below one is a
// no-op for callers, not an error.
func ClampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}
