package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
)

// SubmitFeedback records the real-world outcome of a case and nudges the
// weight of every agent that contributed a signal to it. The nudges are
// computed from the stored weights inside the repository's exclusive
// section together with the outcome write, and a case accepts exactly one
// outcome. A neutral outcome resolves the case without moving any weight.
func (uc *UseCases) SubmitFeedback(ctx context.Context, caseID types.CaseID, outcome types.Outcome) ([]*model.AgentWeight, error) {
	if !outcome.IsSet() || !outcome.IsValid() {
		return nil, goerr.Wrap(ErrInvalidOutcome, "outcome must be positive, negative or neutral",
			goerr.V("outcome", outcome))
	}

	record, err := uc.repo.Cases().Get(ctx, caseID)
	if err != nil {
		return nil, caseError(err, caseID, "failed to load case for feedback")
	}
	if record.Outcome.IsSet() {
		return nil, goerr.Wrap(ErrAlreadyResolved, "case already has an outcome",
			goerr.V(CaseIDKey, caseID),
			goerr.V("outcome", record.Outcome))
	}

	var updates []model.WeightUpdate
	if outcome != types.OutcomeNeutral {
		for _, signal := range record.Signals {
			if signal.Stance == types.StanceNeutral {
				// An agent that took no side is neither rewarded nor punished
				continue
			}
			updates = append(updates, model.WeightUpdate{
				AgentID: signal.AgentID,
				Agree:   stanceAgrees(signal.Stance, outcome),
			})
		}
	}

	updated, err := uc.repo.ApplyFeedback(ctx, caseID, outcome, updates, uc.policy)
	if err != nil {
		return nil, caseError(err, caseID, "failed to persist feedback")
	}

	logging.From(ctx).Info("feedback recorded",
		"case_id", caseID,
		"outcome", outcome,
		"weights_updated", len(updated),
	)

	return updated, nil
}

// stanceAgrees reports whether an agent's stance matched the outcome. An
// agent agrees when it favored quitting and the quit worked out, or favored
// staying and the quit went badly.
func stanceAgrees(stance types.Stance, outcome types.Outcome) bool {
	switch outcome {
	case types.OutcomePositive:
		return stance == types.StanceFavorQuit
	case types.OutcomeNegative:
		return stance == types.StanceFavorStay
	default:
		return false
	}
}
