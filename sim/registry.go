package sim

import (
	"github.com/openuat/uatsim/agent"
	"github.com/openuat/uatsim/core"
)

// registry tracks every agent that ever entered the run and which of them
// are still active. IDs are assigned sequentially on insertion and never
// reused, so trade records stay unambiguous after agents retire.
type registry[R comparable] struct {
	agents []agent.Agent[R]
	active []core.AgentID
}

func (r *registry[R]) insert(a agent.Agent[R]) core.AgentID {
	id := core.AgentID(len(r.agents))
	r.agents = append(r.agents, a)
	r.active = append(r.active, id)
	return id
}

func (r *registry[R]) at(id core.AgentID) agent.Agent[R] {
	return r.agents[id]
}

func (r *registry[R]) activeIDs() []core.AgentID {
	return r.active
}

func (r *registry[R]) activeCount() int {
	return len(r.active)
}

// isActive reports whether the agent has not retired. Settlement uses it
// to avoid notifying sellers that already left the market.
func (r *registry[R]) isActive(id core.AgentID) bool {
	for _, a := range r.active {
		if a == id {
			return true
		}
	}
	return false
}

func (r *registry[R]) setActive(ids []core.AgentID) {
	r.active = ids
}
