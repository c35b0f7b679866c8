package agent

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// PeerSentiment scores what people who know the situation think: the peer
// consensus survey value and mentor endorsement. Peer data arrives already
// resolved to a number by the survey collaborator.
type PeerSentiment struct{}

func (x *PeerSentiment) ID() types.AgentID {
	return types.AgentPeerSentiment
}

func (x *PeerSentiment) Remediation() string {
	return "Walk 3 trusted peers or a mentor through the concrete plan and collect their objections"
}

func (x *PeerSentiment) Evaluate(profile *model.Profile) (*model.AgentSignal, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	market := profile.Market

	consensus, defaulted := market.PeerConsensusOrDefault()
	score := 20 + consensus*60
	rationale := []string{fmt.Sprintf("Peer consensus is %.0f%% in favor of quitting", consensus*100)}
	var redFlags []string

	if defaulted {
		rationale = append(rationale, "No peer consensus data, neutral consensus assumed")
	}

	if market.MentorEndorses {
		score += 15
		rationale = append(rationale, "A mentor endorses the move")
	}

	if !defaulted && consensus < 0.3 {
		score -= 5
		rationale = append(rationale, "Peers broadly advise against quitting now")
		redFlags = append(redFlags, "Peer consensus strongly against quitting")
	}

	score = clampScore(score)
	return &model.AgentSignal{
		AgentID:   x.ID(),
		Score:     score,
		Rationale: rationale,
		RedFlags:  redFlags,
		Stance:    stanceFor(score, 70, 45),
	}, nil
}
