// Package airspace models the geography permits are issued over.
package airspace

import (
	"iter"

	"github.com/openuat/uatsim/core"
)

// Airspace generates missions over a region type and enumerates its
// regions. Implementations must be deterministic for a given seed.
type Airspace[R comparable] interface {
	RandomMission(seed int64) core.Mission[R]
	Regions() iter.Seq[R]
}
