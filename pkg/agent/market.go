package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// MarketReadiness scores how ready the person is to find demand in the
// market: demonstrated skills, network reach, endorsements and recent
// proof-of-work output.
type MarketReadiness struct{}

func (x *MarketReadiness) ID() types.AgentID {
	return types.AgentMarketReadiness
}

func (x *MarketReadiness) Remediation() string {
	return "Package one clear paid offer aligned to top skills and verify willingness to pay with 10+ customer interviews"
}

func (x *MarketReadiness) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	net := profile.Network

	skills := len(net.TopSkills)
	counted := skills
	if counted > 8 {
		counted = 8
	}
	score := 30 + float64(counted)*4
	rationale := []string{fmt.Sprintf("Detected %d core skills in the profile", skills)}
	var redFlags []string

	reach, reachDefaulted := net.Reach()
	switch reach {
	case "large":
		score += 20
		rationale = append(rationale, "Large network improves opportunity discovery")
	case "medium":
		score += 10
	default:
		score -= 5
		rationale = append(rationale, "Small network may slow initial traction")
	}
	if reachDefaulted {
		rationale = append(rationale, "Network reach missing, medium assumed")
	}

	endorse, endorseDefaulted := net.EndorsementsStrength()
	switch endorse {
	case "strong":
		score += 12
	case "weak":
		score -= 8
		rationale = append(rationale, "Weak endorsements reduce social proof")
	}
	if endorseDefaulted {
		rationale = append(rationale, "Endorsement strength missing, moderate assumed")
	}

	switch {
	case net.RecentPosts >= 6:
		score += 8
	case net.RecentPosts == 0:
		score -= 7
		rationale = append(rationale, "No recent proof-of-work content")
	}

	if skills < 3 {
		redFlags = append(redFlags, "Fewer than 3 demonstrated skills for a market transition")
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Stance:    stanceFor(score, 70, 48),
	}, nil
}
