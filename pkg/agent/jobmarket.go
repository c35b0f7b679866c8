package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// JobMarketHeat scores how forgiving the job market would be if the plan
// fails and a return to employment becomes necessary.
type JobMarketHeat struct{}

func (x *JobMarketHeat) ID() types.AgentID {
	return types.AgentJobMarketHeat
}

func (x *JobMarketHeat) Remediation() string {
	return "Keep a reversible fallback path: a part-time role or contract buffer in the current field"
}

func (x *JobMarketHeat) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}

	signal, defaulted := profile.Market.MarketSignalOrDefault()
	score := 25 + signal*55
	rationale := []string{fmt.Sprintf("Hiring-heat signal is %.2f", signal)}

	if defaulted {
		rationale = append(rationale, "No market signal data, neutral market assumed")
	}

	experience, expDefaulted := profile.Personal.YearsExperienceOrDefault()
	switch {
	case experience >= 10:
		score += 10
		rationale = append(rationale, "Senior experience keeps re-entry options open")
	case experience < 2:
		score -= 8
		rationale = append(rationale, "Limited experience makes re-entry slower in a cold market")
	}
	if expDefaulted {
		rationale = append(rationale, fmt.Sprintf("Years of experience missing, %.0f assumed", model.DefaultYearsExperience))
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		Stance:    stanceFor(score, 68, 45),
	}, nil
}
