package interfaces

import (
	"context"

	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// WeightRepository defines the interface for AgentWeight persistence.
// Weight entries are created lazily and never deleted.
type WeightRepository interface {
	// Get retrieves the weight entry for an agent
	Get(ctx context.Context, agentID types.AgentID) (*model.AgentWeight, error)

	// List retrieves all weight entries ordered by agent ID
	List(ctx context.Context) ([]*model.AgentWeight, error)

	// Put creates or replaces a weight entry
	Put(ctx context.Context, weight *model.AgentWeight) error
}
