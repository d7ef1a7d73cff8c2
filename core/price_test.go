package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestBidBeats_StrictComparison(t *testing.T) {
	check.True(t, BidBeats(2.0, 1.9999))
	check.False(t, BidBeats(2.0, 2.0))
	check.False(t, BidBeats(1.5, 2.0))
}

func TestBidBeats_RoundsToMonetaryPrecision(t *testing.T) {
	// Differences below 0.0001 disappear after rounding.
	check.False(t, BidBeats(2.00001, 2.0))
	check.False(t, BidBeats(2.0, 2.00001))

	// Differences at precision survive.
	check.True(t, BidBeats(2.0001, 2.0))
}

func TestBidBeats_FloatingPointArtifacts(t *testing.T) {
	// 0.1+0.2 != 0.3 in binary floats; decimal comparison must not see a
	// difference.
	check.False(t, BidBeats(0.1+0.2, 0.3))
	check.False(t, BidBeats(0.3, 0.1+0.2))
}

func TestBidBeats_ZeroReference(t *testing.T) {
	// Primary issuance lists at min value zero: any positive bid beats it,
	// a zero bid does not.
	check.True(t, BidBeats(0.0001, 0))
	check.False(t, BidBeats(0, 0))
}
