package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// HouseholdRisk scores how well the household can absorb the income gap:
// dependents, partner income stability and family support.
type HouseholdRisk struct{}

func (x *HouseholdRisk) ID() types.AgentID {
	return types.AgentHouseholdRisk
}

func (x *HouseholdRisk) Remediation() string {
	return "Agree on a household budget and review stress and finances on a weekly cadence before resigning"
}

func (x *HouseholdRisk) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	household := profile.Household
	runway := profile.Finances.RunwayMonths()

	score := 55.0
	var rationale []string
	var redFlags []string

	switch {
	case household.Dependents >= 2:
		score -= 15
		rationale = append(rationale, "2+ dependents increase household risk tolerance requirements")
	case household.Dependents == 1:
		score -= 8
		rationale = append(rationale, "Single dependent requires stronger safety margin")
	default:
		score += 5
	}

	if household.PartnerIncomeStable {
		score += 12
		rationale = append(rationale, "Partner income adds household resilience")
	} else {
		score -= 10
		rationale = append(rationale, "No stable partner income buffer")
		if household.Dependents > 0 {
			redFlags = append(redFlags, "Dependents with unstable partner income")
		}
	}

	support, supportDefaulted := household.Support()
	switch support {
	case "high":
		score += 8
	case "low":
		score -= 8
		rationale = append(rationale, "Low family support can raise execution pressure")
	}
	if supportDefaulted {
		rationale = append(rationale, "Family support level missing, medium assumed")
	}

	if runway < 6 && household.Dependents > 0 {
		score -= 12
		rationale = append(rationale, "Runway below 6 months with dependents is a red-zone setup")
	}

	if len(household.MajorEvents) > 0 {
		rationale = append(rationale, fmt.Sprintf("%d major household events expected within 12 months", len(household.MajorEvents)))
	}

	if len(rationale) == 0 {
		rationale = append(rationale, "Household context is manageable for transition")
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Stance:    stanceFor(score, 72, 52),
	}, nil
}
