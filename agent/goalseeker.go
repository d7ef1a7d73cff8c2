package agent

import (
	"math/rand"

	"github.com/openuat/uatsim/core"
)

// maxProbes bounds the forward search for a tick where every goal is
// available. Without a bound the search would spin forever once the
// goals fall outside a book's time window.
const maxProbes = 32

// GoalAgent wants to hold permits for a fixed set of regions at one common
// tick. Each bid phase it searches forward in time for the first tick at
// which every goal is available and bids on all of them; after trading it
// relists everything it holds, keeping the market liquid. It retires once
// it holds all of its goals.
type GoalAgent[R comparable] struct {
	goals []R
	owned map[core.Permit[R]]struct{}
	cost  float64
}

// NewGoalAgent creates an agent seeking the given goal regions. Duplicate
// goals are dropped; the remaining order is preserved so bid order stays
// deterministic for a fixed seed.
func NewGoalAgent[R comparable](goals []R) *GoalAgent[R] {
	seen := make(map[R]struct{}, len(goals))
	unique := make([]R, 0, len(goals))
	for _, g := range goals {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		unique = append(unique, g)
	}
	return &GoalAgent[R]{
		goals: unique,
		owned: make(map[core.Permit[R]]struct{}),
	}
}

// Cost returns the net amount spent on permits so far: purchases minus
// sale revenue.
func (a *GoalAgent[R]) Cost() float64 { return a.cost }

// BidPhase finds the nearest tick at which all goals are available and
// bids on each. The probe stride and the bid prices come from a generator
// seeded with the call's seed.
func (a *GoalAgent[R]) BidPhase(t core.Tick, bid BidFunc[R], status StatusFunc[R], seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	target := t + 1
	found := false
	for probe := 0; probe < maxProbes; probe++ {
		allAvailable := true
		for _, goal := range a.goals {
			if status(goal, target).Status != core.StatusAvailable {
				allAvailable = false
				break
			}
		}
		if allAvailable {
			found = true
			break
		}
		target += core.Tick(1 + rng.Intn(5))
	}
	if !found {
		return nil
	}

	for _, goal := range a.goals {
		bid(goal, target, rng.Float64())
	}
	return nil
}

// AskPhase relists every permit the agent holds at min value zero, unless
// the goals are already met, in which case it holds on to them.
func (a *GoalAgent[R]) AskPhase(t core.Tick, ask AskFunc[R], status StatusFunc[R], seed int64) error {
	if len(a.owned) == len(a.goals) {
		return nil
	}
	for p := range a.owned {
		ask(p.Location, p.Time, 0)
	}
	clear(a.owned)
	return nil
}

// OnBought adds the permit to the agent's holdings.
func (a *GoalAgent[R]) OnBought(location R, t core.Tick, value float64) error {
	a.owned[core.Permit[R]{Location: location, Time: t}] = struct{}{}
	a.cost += value
	return nil
}

// OnSold credits the sale. Holdings were already cleared in AskPhase when
// the permit was relisted.
func (a *GoalAgent[R]) OnSold(location R, t core.Tick, value float64) {
	a.cost -= value
}

// Stop reports whether the agent holds every goal.
func (a *GoalAgent[R]) Stop(t core.Tick, seed int64) bool {
	return len(a.goals) > 0 && len(a.owned) == len(a.goals)
}
