package interfaces

import (
	"context"

	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// Repository defines the interface for the durable swarm memory: per-agent
// weights and the append-only case history. Implementations own the
// single-writer discipline; every mutating call is durable when it returns.
type Repository interface {
	Weights() WeightRepository
	Cases() CaseRepository

	// ApplyFeedback records the outcome on the case and nudges the weight
	// of every listed agent in one atomic step: either both become durable
	// or neither does. The current weight is read and the nudge computed
	// inside the implementation's exclusive section, so concurrent feedback
	// on different cases never loses an update. The outcome on the stored
	// case must be unset. Returns the weight entries after the nudges.
	ApplyFeedback(ctx context.Context, caseID types.CaseID, outcome types.Outcome, updates []model.WeightUpdate, policy *config.Policy) ([]*model.AgentWeight, error)

	Close() error
}
