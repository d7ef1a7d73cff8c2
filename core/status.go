package core

// Status is the public state of a permit as seen by one observer.
type Status int

const (
	// StatusUnavailable covers permits outside the trading window, permits
	// in use by someone else, and permits the observer itself has on sale.
	StatusUnavailable Status = iota

	// StatusAvailable means the permit is on sale by another party and the
	// observer may bid on it.
	StatusAvailable

	// StatusOwned means the observer holds the permit.
	StatusOwned
)

func (s Status) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusAvailable:
		return "available"
	case StatusOwned:
		return "owned"
	default:
		return "unknown"
	}
}

// PermitView is what an observer learns about a permit. MinValue and
// History are meaningful only when Status is StatusAvailable.
type PermitView struct {
	Status   Status
	MinValue float64
	History  []TradeValue
}
