// Package agent defines the contract between the simulation driver and
// market participants, along with example agent implementations.
package agent

import (
	"github.com/openuat/uatsim/core"
)

// BidFunc submits a sealed bid on the permit for location at tick t. The
// driver reports false when the permit cannot be bid on at all; acceptance
// of an order does not reveal whether it leads the auction.
type BidFunc[R comparable] func(location R, t core.Tick, price float64) bool

// AskFunc relists a permit the agent owns at a new minimum value.
type AskFunc[R comparable] func(location R, t core.Tick, price float64) bool

// StatusFunc is the availability oracle handed to agents. It answers for
// any permit without side effects.
type StatusFunc[R comparable] func(location R, t core.Tick) core.PermitView

// Agent is the minimal contract every participant implements. The driver
// calls BidPhase once per tick while the agent is active, and polls Stop
// at the end of each tick; a true return retires the agent.
//
// Seeds are derived per call from the run seed. Agents must base any
// randomness on them rather than on a process-global generator, so runs
// replay deterministically.
type Agent[R comparable] interface {
	BidPhase(t core.Tick, bid BidFunc[R], status StatusFunc[R], seed int64) error
	Stop(t core.Tick, seed int64) bool
}

// Seller is implemented by agents that relist permits after trading.
type Seller[R comparable] interface {
	AskPhase(t core.Tick, ask AskFunc[R], status StatusFunc[R], seed int64) error
}

// BuyObserver is implemented by agents that track settlement of their own
// bids. A non-nil error aborts the run; it signals a driver bug such as a
// purchase notification the agent never bid for.
type BuyObserver[R comparable] interface {
	OnBought(location R, t core.Tick, value float64) error
}

// SellObserver is implemented by agents that track sales of permits they
// had on sale.
type SellObserver[R comparable] interface {
	OnSold(location R, t core.Tick, value float64)
}
