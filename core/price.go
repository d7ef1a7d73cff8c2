package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // 4 decimal places for permit values (0.0001 precision)

// BidBeats reports whether price strictly exceeds reference.
// Uses decimal arithmetic with monetaryPrecision to avoid floating-point errors.
func BidBeats(price, reference float64) bool {
	priceDecimal := decimal.NewFromFloat(price).Round(monetaryPrecision)
	referenceDecimal := decimal.NewFromFloat(reference).Round(monetaryPrecision)

	return priceDecimal.GreaterThan(referenceDecimal)
}
