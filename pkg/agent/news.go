package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// NewsOutlook scores the sector outlook from already-resolved news
// sentiment and layoff coverage. A zero sentiment reads as neutral.
type NewsOutlook struct{}

func (x *NewsOutlook) ID() types.AgentID {
	return types.AgentNewsOutlook
}

func (x *NewsOutlook) Remediation() string {
	return "Track sector news for a month and define an objective go/no-go gate before acting"
}

func (x *NewsOutlook) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	market := profile.Market

	sentiment := market.NewsSentiment
	if sentiment < -1 {
		sentiment = -1
	}
	if sentiment > 1 {
		sentiment = 1
	}

	score := 50 + sentiment*35
	rationale := []string{fmt.Sprintf("Sector news sentiment is %+.2f", sentiment)}
	var redFlags []string

	if market.LayoffMentions > 0 {
		penalty := float64(market.LayoffMentions) * 5
		if penalty > 20 {
			penalty = 20
		}
		score -= penalty
		rationale = append(rationale, fmt.Sprintf("%d layoff mentions in recent sector coverage", market.LayoffMentions))
	}
	if market.LayoffMentions >= 3 {
		redFlags = append(redFlags, "Repeated layoff mentions in sector news")
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Stance:    stanceFor(score, 70, 40),
	}, nil
}
