// Package agent holds the signal agents of the swarm. Every agent is a
// deterministic, side-effect-free scoring function over one domain slice of
// the profile; none of them touches storage.
package agent

import (
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// Agent evaluates a profile into a bounded score with rationale and flags
type Agent interface {
	// ID returns the stable identifier referenced by weights and cases
	ID() types.AgentID

	// Evaluate scores the profile. Missing or malformed fields degrade to
	// documented defaults instead of failing; an error means the agent
	// could not produce any signal and is excluded from aggregation.
	Evaluate(profile *model.Profile) (*model.AgentSignal, error)

	// Remediation is the improvement step suggested when this agent's
	// domain scores low.
	Remediation() string
}

// Registry is the closed, ordered set of registered agents. The order is
// the tie-break order for action plan items, so it is part of the engine's
// deterministic behavior.
type Registry struct {
	agents []Agent
}

// NewRegistry creates a registry with the given agents in order
func NewRegistry(agents ...Agent) *Registry {
	return &Registry{
		agents: append([]Agent(nil), agents...),
	}
}

// Default returns the registry with all built-in agents in their canonical
// registration order.
func Default() *Registry {
	return NewRegistry(
		&FinanceRunway{},
		&MarketReadiness{},
		&HouseholdRisk{},
		&PositioningStrength{},
		&PeerSentiment{},
		&JobMarketHeat{},
		&NewsOutlook{},
		&FinalSynthesis{},
	)
}

// Agents returns the registered agents in registration order
func (x *Registry) Agents() []Agent {
	return append([]Agent(nil), x.agents...)
}

// Find returns the agent with the given ID, or nil
func (x *Registry) Find(id types.AgentID) Agent {
	for _, a := range x.agents {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// IDs returns the agent IDs in registration order
func (x *Registry) IDs() []types.AgentID {
	ids := make([]types.AgentID, 0, len(x.agents))
	for _, a := range x.agents {
		ids = append(ids, a.ID())
	}
	return ids
}

// clampScore bounds a raw score into [0,100]
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// stanceFor maps a bounded score onto a stance using the agent's own
// go/hold cut points.
func stanceFor(score, goAt, holdBelow float64) types.Stance {
	switch {
	case score >= goAt:
		return types.StanceFavorQuit
	case score < holdBelow:
		return types.StanceFavorStay
	default:
		return types.StanceNeutral
	}
}
