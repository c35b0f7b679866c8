package memory

import (
	"sort"

	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// sortedWeights returns deep copies of the weight entries ordered by agent
// ID for stable listings.
func sortedWeights(weights map[types.AgentID]*model.AgentWeight) []*model.AgentWeight {
	result := make([]*model.AgentWeight, 0, len(weights))
	for _, w := range weights {
		result = append(result, w.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AgentID < result[j].AgentID
	})
	return result
}
