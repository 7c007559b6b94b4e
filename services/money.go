package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// lineAmount is price × quantity.
func lineAmount(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// percentOf is round(amount × percent / 100) to cents.
func percentOf(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(2)
}

// orderTotal is subtotal + fee - discount, never below zero.
func orderTotal(subtotal, fee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(fee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}
