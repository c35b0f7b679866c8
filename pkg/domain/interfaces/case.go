package interfaces

import (
	"context"

	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// CaseRepository defines the interface for CaseRecord persistence. The
// history is append-only; the only mutation ever applied to a stored case
// is the outcome back-fill through Repository.ApplyFeedback.
type CaseRepository interface {
	// Create persists a new case. A missing ID or CreatedAt is filled in.
	Create(ctx context.Context, record *model.CaseRecord) (*model.CaseRecord, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id types.CaseID) (*model.CaseRecord, error)

	// List retrieves the full case history in creation order
	List(ctx context.Context) ([]*model.CaseRecord, error)
}
