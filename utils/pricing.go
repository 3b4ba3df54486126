package utils

import "math"

// TaxRate is the flat tax applied to every order subtotal.
const TaxRate = 0.02

// OrderLine pairs an authoritative offer price with an ordered quantity.
// A line whose product could not be resolved carries a zero offer price
// and contributes nothing to the subtotal.
type OrderLine struct {
	OfferPrice float64
	Quantity   int
}

// OrderTotals computes the charge for a set of order lines. The subtotal
// keeps fractional currency; the tax is floored to a whole unit. This
// rounding must not change: stored order amounts depend on it.
func OrderTotals(lines []OrderLine) (subtotal, tax, total float64) {
	for _, line := range lines {
		subtotal += line.OfferPrice * float64(line.Quantity)
	}
	tax = math.Floor(subtotal * TaxRate)
	return subtotal, tax, subtotal + tax
}
