package core

// Tick is the discrete simulation time unit.
type Tick uint64

// AgentID identifies a participant for the lifetime of a simulation run.
// IDs are assigned sequentially as agents enter the market.
type AgentID uint64

// NoOwner marks a permit that has never been bought, or a trade with no
// selling party (primary issuance).
const NoOwner AgentID = ^AgentID(0)

// Permit is the tradable asset: the right to occupy a region during a
// single tick.
type Permit[R comparable] struct {
	Location R
	Time     Tick
}

// Mission is the ordered pair of regions an agent intends to traverse.
// It is assigned at construction and never changes.
type Mission[R comparable] struct {
	From R
	To   R
}

// TradeValue records one settled trade on a permit: the minimum value the
// seller asked and the winning bid that was paid.
type TradeValue struct {
	MinValue float64 `json:"min_value"`
	BidValue float64 `json:"bid_value"`
}
