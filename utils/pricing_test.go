package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []OrderLine
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name:     "small order keeps floored tax at zero",
			lines:    []OrderLine{{OfferPrice: 10, Quantity: 2}, {OfferPrice: 5, Quantity: 1}},
			subtotal: 25,
			tax:      0, // floor(25 * 0.02) = floor(0.5)
			total:    25,
		},
		{
			name:     "tax floors to whole currency units",
			lines:    []OrderLine{{OfferPrice: 149.50, Quantity: 1}},
			subtotal: 149.50,
			tax:      2, // floor(2.99)
			total:    151.50,
		},
		{
			name:     "round subtotal",
			lines:    []OrderLine{{OfferPrice: 50, Quantity: 2}},
			subtotal: 100,
			tax:      2,
			total:    102,
		},
		{
			name:     "unresolved product contributes nothing",
			lines:    []OrderLine{{OfferPrice: 0, Quantity: 3}, {OfferPrice: 20, Quantity: 1}},
			subtotal: 20,
			tax:      0,
			total:    20,
		},
		{
			name:     "empty order",
			lines:    nil,
			subtotal: 0,
			tax:      0,
			total:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := OrderTotals(tt.lines)
			assert.Equal(t, tt.subtotal, subtotal)
			assert.Equal(t, tt.tax, tax)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestOrderTotalsKeepsFractionalSubtotal(t *testing.T) {
	subtotal, tax, total := OrderTotals([]OrderLine{{OfferPrice: 0.99, Quantity: 3}})
	assert.InDelta(t, 2.97, subtotal, 1e-9)
	assert.Equal(t, 0.0, tax)
	assert.InDelta(t, 2.97, total, 1e-9)
}
