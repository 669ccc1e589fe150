package domain

import "github.com/shopspring/decimal"

// Quantities are stored as numeric(14,3), money as numeric(14,2).
const (
	QuantityScale = 3
	MoneyScale    = 2
)

var (
	quantityLimit = decimal.New(1, 14-QuantityScale)
	moneyLimit    = decimal.New(1, 14-MoneyScale)
)

// FitsQuantity reports whether d is stored exactly by a quantity column.
func FitsQuantity(d decimal.Decimal) bool {
	return fits(d, QuantityScale, quantityLimit)
}

// FitsMoney reports whether d is stored exactly by a price or cash column.
func FitsMoney(d decimal.Decimal) bool {
	return fits(d, MoneyScale, moneyLimit)
}

func fits(d decimal.Decimal, scale int32, limit decimal.Decimal) bool {
	return d.Equal(d.Truncate(scale)) && d.Abs().LessThan(limit)
}
