package agent

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// PositioningStrength scores how strongly the public professional profile
// supports inbound lead generation during the transition runway.
type PositioningStrength struct{}

func (x *PositioningStrength) ID() types.AgentID {
	return types.AgentPositioningStrength
}

func (x *PositioningStrength) Remediation() string {
	return "Publish 2 proof-of-work posts weekly and collect 3 testimonials from previous collaborators"
}

func (x *PositioningStrength) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	net := profile.Network

	counted := len(net.TopSkills)
	if counted > 10 {
		counted = 10
	}
	score := 25 + float64(counted)*5
	rationale := []string{"Public positioning influences inbound lead generation for the transition runway"}

	switch {
	case net.RecentPosts >= 8:
		score += 15
		rationale = append(rationale, "Strong recent posting cadence")
	case net.RecentPosts < 2:
		score -= 8
		rationale = append(rationale, "Low posting cadence weakens discovery momentum")
	}

	endorse, _ := net.EndorsementsStrength()
	switch endorse {
	case "strong":
		score += 10
	case "weak":
		score -= 10
	}

	reach, _ := net.Reach()
	switch reach {
	case "large":
		score += 10
	case "small":
		score -= 6
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		Stance:    stanceFor(score, 68, 45),
	}, nil
}
