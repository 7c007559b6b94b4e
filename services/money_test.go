package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name                    string
		subtotal, fee, discount string
		want                    float64
	}{
		{name: "no discount", subtotal: "21.98", fee: "2.99", discount: "0", want: 24.97},
		{name: "discount below subtotal", subtotal: "22", fee: "2", discount: "2.2", want: 21.8},
		{name: "discount equals subtotal and fee", subtotal: "10", fee: "2", discount: "12", want: 0},
		{name: "discount exceeds subtotal and fee", subtotal: "10", fee: "2", discount: "15.5", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderTotal(decimal.RequireFromString(tt.subtotal), decimal.RequireFromString(tt.fee), decimal.RequireFromString(tt.discount))
			assert.Equal(t, tt.want, cents(got))
			assert.False(t, got.IsNegative())
		})
	}
}

func TestPercentOfRoundsToCents(t *testing.T) {
	assert.Equal(t, 2.2, cents(percentOf(decimal.RequireFromString("21.98"), 10)))
	assert.Equal(t, 0.33, cents(percentOf(decimal.RequireFromString("0.99"), 33)))
	assert.Equal(t, 8.99, cents(percentOf(lineAmount(8.99, 2), 50)))
}
