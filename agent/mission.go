package agent

import (
	"fmt"
	"math/rand"

	"github.com/openuat/uatsim/core"
)

// MissionAgent is the simplest useful participant: it wants exactly two
// permits, one on each leg of its mission, one and two ticks ahead of the
// tick it bids on. It bids the same price on both and retires once both
// purchases settle.
type MissionAgent[R comparable] struct {
	mission   core.Mission[R]
	remaining int
}

// NewMissionAgent creates an agent for the given mission. The mission is
// fixed for the agent's lifetime.
func NewMissionAgent[R comparable](mission core.Mission[R]) *MissionAgent[R] {
	return &MissionAgent[R]{mission: mission}
}

// Mission returns the agent's mission.
func (a *MissionAgent[R]) Mission() core.Mission[R] { return a.mission }

// Remaining returns how many of the agent's bids have not settled yet.
func (a *MissionAgent[R]) Remaining() int { return a.remaining }

// BidPhase bids on the mission's first leg at t+1 and second leg at t+2,
// but only when both permits are available. The price is drawn once from
// a generator seeded with the call's seed, so a given seed always produces
// the same price.
func (a *MissionAgent[R]) BidPhase(t core.Tick, bid BidFunc[R], status StatusFunc[R], seed int64) error {
	if status(a.mission.From, t+1).Status != core.StatusAvailable {
		return nil
	}
	if status(a.mission.To, t+2).Status != core.StatusAvailable {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	price := 1.0 + rng.Float64()

	bid(a.mission.From, t+1, price)
	bid(a.mission.To, t+2, price)
	a.remaining = 2
	return nil
}

// OnBought records settlement of one of the agent's bids. Receiving more
// notifications than bids placed is a driver bug and is reported instead
// of driving the counter negative.
func (a *MissionAgent[R]) OnBought(location R, t core.Tick, value float64) error {
	if a.remaining == 0 {
		return fmt.Errorf("mission agent: purchase notification for (%v, %d) with no outstanding bids", location, t)
	}
	a.remaining--
	return nil
}

// Stop reports whether the agent is done: no bids outstanding.
func (a *MissionAgent[R]) Stop(t core.Tick, seed int64) bool {
	return a.remaining == 0
}
