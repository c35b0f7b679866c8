package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// Sentinel errors for the use case layer
var (
	// Validation errors
	ErrEmptyProfile   = errors.New("profile has no usable fields")
	ErrInvalidOutcome = errors.New("invalid outcome")

	// Feedback errors
	ErrCaseNotFound    = errors.New("case not found")
	ErrAlreadyResolved = errors.New("case outcome already recorded")

	// Aggregation errors
	ErrNoSignals = errors.New("no agent produced a signal")
)

// Context keys for error values
const (
	CaseIDKey  = "case_id"
	AgentIDKey = "agent_id"
)

// caseError maps repository errors onto the use case sentinels. Only a
// repository not-found becomes ErrCaseNotFound; a transport or storage
// failure keeps its own identity so callers can treat it as retryable.
func caseError(err error, caseID types.CaseID, msg string) error {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		return goerr.Wrap(ErrCaseNotFound, msg, goerr.V(CaseIDKey, caseID))
	case errors.Is(err, interfaces.ErrCaseResolved):
		return goerr.Wrap(ErrAlreadyResolved, msg, goerr.V(CaseIDKey, caseID))
	default:
		return goerr.Wrap(err, msg, goerr.V(CaseIDKey, caseID))
	}
}
