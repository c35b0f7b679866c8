package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
)

// Decide runs the full swarm pass over a profile: every registered agent
// scores it, the signals are combined by the current weights, and the
// resulting case is persisted before the decision is returned. Individual
// agent failures exclude that agent and are noted in the trace; the pass
// fails only when validation, aggregation or storage fails.
func (uc *UseCases) Decide(ctx context.Context, profile *model.Profile) (*model.Decision, error) {
	if profile == nil || profile.IsZero() {
		return nil, goerr.Wrap(ErrEmptyProfile, "cannot decide on an empty profile")
	}

	stored, err := uc.loadWeights(ctx)
	if err != nil {
		return nil, err
	}

	var signals []model.AgentSignal
	var trace []string
	for _, ag := range uc.registry.Agents() {
		signal, err := ag.Evaluate(profile)
		if err != nil {
			logging.From(ctx).Warn("agent excluded from aggregation",
				"agent_id", ag.ID(),
				logging.ErrAttr(err),
			)
			trace = append(trace, fmt.Sprintf("agent %s excluded: %v", ag.ID(), err))
			continue
		}
		signals = append(signals, *signal)
	}
	if len(signals) == 0 {
		return nil, goerr.Wrap(ErrNoSignals, "every agent failed to evaluate the profile")
	}

	weightsUsed := make(map[types.AgentID]float64, len(signals))
	var weightedSum, weightTotal float64
	for _, signal := range signals {
		weight := uc.policy.DefaultWeight
		if entry, ok := stored[signal.AgentID]; ok {
			weight = entry.Weight
		}
		weightsUsed[signal.AgentID] = weight
		weightedSum += weight * signal.Score
		weightTotal += weight
	}
	aggregate := weightedSum / weightTotal

	recommendation := uc.recommendationFor(aggregate)
	window := uc.quitWindowFor(recommendation, signals)
	redFlags := uc.collectRedFlags(signals)
	actionPlan := uc.buildActionPlan(signals)
	features := model.ProfileFeatures(profile)

	similar, err := uc.similarTo(ctx, features, uc.policy.SimilarLimit)
	if err != nil {
		return nil, err
	}

	record := &model.CaseRecord{
		CreatedAt:      time.Now().UTC(),
		Input:          *profile,
		Signals:        signals,
		WeightsUsed:    weightsUsed,
		AggregateScore: aggregate,
		Recommendation: recommendation,
		QuitWindow:     window,
		RedFlags:       redFlags,
		ActionPlan:     actionPlan,
		Trace:          trace,
		Features:       features,
	}

	created, err := uc.repo.Cases().Create(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist case")
	}

	logging.From(ctx).Info("decision recorded",
		"case_id", created.ID,
		"score", created.AggregateScore,
		"recommendation", created.Recommendation,
		"signals", len(created.Signals),
	)

	return &model.Decision{
		Case:         created,
		SimilarCases: similar,
	}, nil
}

// loadWeights reads every persisted weight entry into an ID-keyed map.
// Agents without an entry fall back to the policy default at read time.
func (uc *UseCases) loadWeights(ctx context.Context) (map[types.AgentID]*model.AgentWeight, error) {
	entries, err := uc.repo.Weights().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load agent weights")
	}

	stored := make(map[types.AgentID]*model.AgentWeight, len(entries))
	for _, entry := range entries {
		stored[entry.AgentID] = entry
	}
	return stored, nil
}

func (uc *UseCases) recommendationFor(aggregate float64) types.Recommendation {
	switch {
	case aggregate >= uc.policy.ThresholdHigh:
		return types.RecommendationQuit
	case aggregate >= uc.policy.ThresholdLow:
		return types.RecommendationWait
	default:
		return types.RecommendationStay
	}
}

// quitWindowFor derives the timing hint from the recommendation and the
// financial signal. A quit call with strong finances means now; weaker
// finances stretch the window out, and a stay call never opens one.
func (uc *UseCases) quitWindowFor(recommendation types.Recommendation, signals []model.AgentSignal) types.QuitWindow {
	var financeReady bool
	for _, signal := range signals {
		if signal.AgentID == types.AgentFinanceRunway && signal.Score >= uc.policy.WindowScore {
			financeReady = true
		}
	}

	switch recommendation {
	case types.RecommendationQuit:
		if financeReady {
			return types.QuitWindowNow
		}
		return types.QuitWindowMidTerm
	case types.RecommendationWait:
		if financeReady {
			return types.QuitWindowMidTerm
		}
		return types.QuitWindowNotYet
	default:
		return types.QuitWindowNotYet
	}
}

// collectRedFlags merges every agent's red flags in signal order, dropping
// duplicates, and appends a note for each agent whose score fell below the
// low-score cutoff.
func (uc *UseCases) collectRedFlags(signals []model.AgentSignal) []string {
	var flags []string
	seen := map[string]bool{}
	for _, signal := range signals {
		for _, flag := range signal.RedFlags {
			if seen[flag] {
				continue
			}
			seen[flag] = true
			flags = append(flags, flag)
		}
	}
	for _, signal := range signals {
		if signal.Score < uc.policy.LowScore {
			flags = append(flags, fmt.Sprintf("weak area: %s scored %.0f", signal.AgentID, signal.Score))
		}
	}
	return flags
}

// buildActionPlan turns the low-scoring agents into remediation steps,
// weakest domain first. Ties keep signal order, which is the registry's
// registration order.
func (uc *UseCases) buildActionPlan(signals []model.AgentSignal) []model.ActionItem {
	var plan []model.ActionItem
	for _, signal := range signals {
		if signal.Score >= uc.policy.LowScore {
			continue
		}
		ag := uc.registry.Find(signal.AgentID)
		if ag == nil {
			continue
		}
		plan = append(plan, model.ActionItem{
			AgentID: signal.AgentID,
			Score:   signal.Score,
			Step:    ag.Remediation(),
		})
	}
	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].Score < plan[j].Score
	})
	return plan
}
