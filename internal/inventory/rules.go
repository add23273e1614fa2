package inventory

import "github.com/shopspring/decimal"

// IsLowStock reports whether a quantity sits at or below the threshold.
// The threshold comes from configuration and is injected into the service;
// rules stay pure.
func IsLowStock(quantityOnHand, threshold float64) bool {
	return quantityOnHand <= threshold
}

// StockValue returns quantityOnHand x inventoryCost. Decimal keeps the
// report sums from drifting when many rows accumulate.
func StockValue(quantityOnHand, inventoryCost float64) float64 {
	return decimal.NewFromFloat(quantityOnHand).
		Mul(decimal.NewFromFloat(inventoryCost)).
		InexactFloat64()
}
