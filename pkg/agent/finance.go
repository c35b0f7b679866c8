package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// FinanceRunway scores the financial ability to survive a quit: months of
// runway, debt load, investment buffer and health insurance continuity.
type FinanceRunway struct{}

func (x *FinanceRunway) ID() types.AgentID {
	return types.AgentFinanceRunway
}

func (x *FinanceRunway) Remediation() string {
	return "Increase liquid runway to at least 6 months and cap monthly burn with a hard stop threshold"
}

func (x *FinanceRunway) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	fin := profile.Finances

	runway := fin.RunwayMonths()
	score := 35.0
	rationale := []string{fmt.Sprintf("Runway is %.1f months", runway)}
	var redFlags []string

	if _, defaulted := fin.MonthlyExpensesOrDefault(); defaulted {
		rationale = append(rationale, fmt.Sprintf("Monthly expenses missing, default of %.0f assumed", model.DefaultMonthlyExpenses))
	}

	switch {
	case runway >= 12:
		score += 38
		rationale = append(rationale, "Runway exceeds 12 months")
	case runway >= 6:
		score += 20
		rationale = append(rationale, "Runway is above 6 months")
	case runway >= 4:
		score += 10
		rationale = append(rationale, "Runway is borderline safe")
	default:
		score -= 15
		rationale = append(rationale, "Runway is high risk (<4 months)")
		redFlags = append(redFlags, "Runway below 4 months")
	}

	expenses, _ := fin.MonthlyExpensesOrDefault()
	if fin.Debt > expenses*12 {
		score -= 10
		rationale = append(rationale, "Debt load is heavy against expense profile")
	}
	if fin.Investments >= expenses*8 {
		score += 7
		rationale = append(rationale, "Investment portfolio provides additional safety buffer")
	}
	switch {
	case fin.HealthInsurance == nil:
		rationale = append(rationale, "Health insurance continuity unknown")
	case !*fin.HealthInsurance:
		score -= 12
		rationale = append(rationale, "No health insurance continuity after quitting")
		redFlags = append(redFlags, "No health insurance continuity")
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Stance:    stanceFor(score, 72, 50),
	}, nil
}
