package model

import "github.com/quitswarm/quitswarm/pkg/domain/types"

// Scorecard counts how often an agent's stance matched reported outcomes
type Scorecard struct {
	FeedbackCount  int `json:"feedback_count"`
	AgreementCount int `json:"agreement_count"`
}

// Accuracy is the agreement ratio, 0 when no feedback has been recorded
func (x Scorecard) Accuracy() float64 {
	if x.FeedbackCount == 0 {
		return 0
	}
	return float64(x.AgreementCount) / float64(x.FeedbackCount)
}

// AgentWeight is the adjustable influence of one agent in the weighted
// aggregation, together with its accuracy scorecard. Weights are created
// lazily with the policy default and are never deleted.
type AgentWeight struct {
	AgentID   types.AgentID `json:"agent_id"`
	Weight    float64       `json:"weight"`
	Scorecard Scorecard     `json:"scorecard"`
}

// NewAgentWeight creates a weight entry at the given default weight
func NewAgentWeight(agentID types.AgentID, weight float64) *AgentWeight {
	return &AgentWeight{
		AgentID: agentID,
		Weight:  weight,
	}
}

// NextWeight is the reweighting rule: a multiplicative nudge by the
// learning rate, clamped into [min, max]. It is pure so the adaptation can
// be tested without touching storage.
func NextWeight(old float64, agree bool, rate, min, max float64) float64 {
	next := old * (1 - rate)
	if agree {
		next = old * (1 + rate)
	}
	if next < min {
		return min
	}
	if next > max {
		return max
	}
	return next
}

// RecordFeedback applies one feedback observation to the weight and
// scorecard using NextWeight.
func (x *AgentWeight) RecordFeedback(agree bool, rate, min, max float64) {
	x.Weight = NextWeight(x.Weight, agree, rate, min, max)
	x.Scorecard.FeedbackCount++
	if agree {
		x.Scorecard.AgreementCount++
	}
}

// Clone returns a deep copy of the weight entry
func (x *AgentWeight) Clone() *AgentWeight {
	copied := *x
	return &copied
}

// WeightUpdate names one agent whose weight should be nudged and whether
// its stance agreed with the reported outcome. The repository applies it
// to the current stored weight, so the caller never computes from a
// possibly stale snapshot.
type WeightUpdate struct {
	AgentID types.AgentID
	Agree   bool
}
