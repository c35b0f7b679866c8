package agent

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// FinalSynthesis is a sanity vote over the raw profile: risk appetite,
// runway and market heat combined. It reads the same input fields as the
// other agents, never their outputs, so it stays a pure function of the
// profile.
type FinalSynthesis struct{}

func (x *FinalSynthesis) ID() types.AgentID {
	return types.AgentFinalSynthesis
}

func (x *FinalSynthesis) Remediation() string {
	return "Define a quit/no-quit gate with objective metrics: runway, pipeline and health"
}

func (x *FinalSynthesis) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}

	score := 45.0
	var rationale []string

	tolerance, toleranceDefaulted := profile.Personal.RiskToleranceLevel()
	switch tolerance {
	case "high":
		score += 10
		rationale = append(rationale, "High risk tolerance supports an earlier move")
	case "low":
		score -= 10
		rationale = append(rationale, "Low risk tolerance argues for more preparation")
	}
	if toleranceDefaulted {
		rationale = append(rationale, "Risk tolerance missing, medium assumed")
	}

	if profile.Finances.RunwayMonths() >= 6 {
		score += 15
		rationale = append(rationale, "Runway covers a standard 6-month transition")
	} else {
		score -= 10
		rationale = append(rationale, "Runway is short of a standard 6-month transition")
	}

	if signal, _ := profile.Market.MarketSignalOrDefault(); signal >= 0.6 {
		score += 10
		rationale = append(rationale, "Warm market reduces downside of a failed attempt")
	}

	if profile.Personal.CareerGoal != "" {
		score += 5
		rationale = append(rationale, "A concrete 12-month career goal is set")
	}

	if profile.Household.Dependents == 0 {
		score += 5
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		Stance:    stanceFor(score, 70, 45),
	}, nil
}
