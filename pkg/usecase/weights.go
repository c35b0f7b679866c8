package usecase

import (
	"context"

	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// ListWeights returns the weight entry of every registered agent in
// registration order. Agents that have never received feedback appear with
// the policy default weight and an empty scorecard.
func (uc *UseCases) ListWeights(ctx context.Context) ([]*model.AgentWeight, error) {
	stored, err := uc.loadWeights(ctx)
	if err != nil {
		return nil, err
	}

	weights := make([]*model.AgentWeight, 0, len(uc.registry.Agents()))
	for _, id := range uc.registry.IDs() {
		if entry, ok := stored[id]; ok {
			weights = append(weights, entry.Clone())
			continue
		}
		weights = append(weights, model.NewAgentWeight(id, uc.policy.DefaultWeight))
	}
	return weights, nil
}

// GetCase loads one case record by ID
func (uc *UseCases) GetCase(ctx context.Context, caseID types.CaseID) (*model.CaseRecord, error) {
	record, err := uc.repo.Cases().Get(ctx, caseID)
	if err != nil {
		return nil, caseError(err, caseID, "failed to load case")
	}
	return record, nil
}
