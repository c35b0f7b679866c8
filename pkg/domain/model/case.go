package model

import (
	"math"
	"time"

	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// CaseRecord is one persisted decision: the input snapshot, every agent
// signal, the weights in effect, and the derived verdict. Records are
// immutable once written except for the single outcome back-fill.
type CaseRecord struct {
	ID             types.CaseID              `json:"case_id"`
	CreatedAt      time.Time                 `json:"created_at"`
	Input          Profile                   `json:"input"`
	Signals        []AgentSignal             `json:"signals"`
	WeightsUsed    map[types.AgentID]float64 `json:"weights_used"`
	AggregateScore float64                   `json:"aggregate_score"`
	Recommendation types.Recommendation      `json:"recommendation"`
	QuitWindow     types.QuitWindow          `json:"quit_window"`
	RedFlags       []string                  `json:"red_flags"`
	ActionPlan     []ActionItem              `json:"action_plan"`
	Trace          []string                  `json:"trace,omitempty"`
	Features       map[string]float64        `json:"features"`
	Outcome        types.Outcome             `json:"outcome,omitempty"`
}

// ActionItem is one remediation step of the action plan, attributed to the
// agent whose domain scored low.
type ActionItem struct {
	AgentID types.AgentID `json:"agent_id"`
	Score   float64       `json:"score"`
	Step    string        `json:"step"`
}

// SimilarCase is a reference to a historical case resembling the current
// profile. It is explanatory context for a decision and is never persisted.
type SimilarCase struct {
	CaseID         types.CaseID         `json:"case_id"`
	Similarity     float64              `json:"similarity"` // 0..1
	Recommendation types.Recommendation `json:"recommendation"`
	Outcome        types.Outcome        `json:"outcome,omitempty"`
}

// Decision is the full result of one Decide call: the persisted case plus
// similar historical cases retrieved for context.
type Decision struct {
	Case         *CaseRecord   `json:"case"`
	SimilarCases []SimilarCase `json:"similar_cases,omitempty"`
}

// Clone returns a deep copy of the case record
func (x *CaseRecord) Clone() *CaseRecord {
	copied := *x

	if x.Signals != nil {
		copied.Signals = make([]AgentSignal, len(x.Signals))
		for i, sig := range x.Signals {
			s := sig
			s.Rationale = append([]string(nil), sig.Rationale...)
			s.RedFlags = append([]string(nil), sig.RedFlags...)
			copied.Signals[i] = s
		}
	}
	if x.WeightsUsed != nil {
		copied.WeightsUsed = make(map[types.AgentID]float64, len(x.WeightsUsed))
		for k, v := range x.WeightsUsed {
			copied.WeightsUsed[k] = v
		}
	}
	if x.Features != nil {
		copied.Features = make(map[string]float64, len(x.Features))
		for k, v := range x.Features {
			copied.Features[k] = v
		}
	}
	copied.RedFlags = append([]string(nil), x.RedFlags...)
	copied.ActionPlan = append([]ActionItem(nil), x.ActionPlan...)
	copied.Trace = append([]string(nil), x.Trace...)

	// input snapshot slices and pointers
	copied.Input.Network.TopSkills = append([]string(nil), x.Input.Network.TopSkills...)
	copied.Input.Household.MajorEvents = append([]string(nil), x.Input.Household.MajorEvents...)
	if x.Input.Finances.HealthInsurance != nil {
		insured := *x.Input.Finances.HealthInsurance
		copied.Input.Finances.HealthInsurance = &insured
	}

	return &copied
}

// Similarity feature names
const (
	FeatureRunway     = "runway"
	FeatureExperience = "experience"
	FeatureMarket     = "market"
	FeaturePeers      = "peers"
	FeatureDependents = "dependents"
	FeatureSkills     = "skills"
)

// featureWeights scales each normalized feature's contribution so no single
// field dominates the distance.
var featureWeights = map[string]float64{
	FeatureRunway:     0.30,
	FeatureExperience: 0.15,
	FeatureMarket:     0.20,
	FeaturePeers:      0.10,
	FeatureDependents: 0.15,
	FeatureSkills:     0.10,
}

// ProfileFeatures extracts the normalized numeric feature vector used for
// similarity search. Every feature is scaled into [0,1] before distance
// computation.
func ProfileFeatures(p *Profile) map[string]float64 {
	experience, _ := p.Personal.YearsExperienceOrDefault()
	peers, _ := p.Market.PeerConsensusOrDefault()

	return map[string]float64{
		FeatureRunway:     clamp01(p.Finances.RunwayMonths() / 24),
		FeatureExperience: clamp01(experience / 40),
		FeatureMarket:     clamp01(p.Market.MarketSignal),
		FeaturePeers:      clamp01(peers),
		FeatureDependents: clamp01(float64(p.Household.Dependents) / 5),
		FeatureSkills:     clamp01(float64(len(p.Network.TopSkills)) / 10),
	}
}

// FeatureSimilarity scores two feature vectors as one minus their weighted
// absolute distance, so the result is in [0,1] and identical vectors score
// exactly one. Missing features count as zero.
func FeatureSimilarity(a, b map[string]float64) float64 {
	var dist float64
	for name, weight := range featureWeights {
		dist += weight * math.Abs(clamp01(a[name])-clamp01(b[name]))
	}
	return clamp01(1 - dist)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
