// Package memory provides an in-memory Repository implementation used for
// development and tests. All data is lost when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

// Repository is the in-memory swarm memory. One RWMutex guards weights and
// cases together so that ApplyFeedback is atomic relative to readers.
type Repository struct {
	mu      sync.RWMutex
	weights map[types.AgentID]*model.AgentWeight
	cases   map[types.CaseID]*model.CaseRecord
	order   []types.CaseID
}

var _ interfaces.Repository = &Repository{}

func New() *Repository {
	return &Repository{
		weights: make(map[types.AgentID]*model.AgentWeight),
		cases:   make(map[types.CaseID]*model.CaseRecord),
	}
}

func (r *Repository) Weights() interfaces.WeightRepository {
	return &weightRepository{repo: r}
}

func (r *Repository) Cases() interfaces.CaseRepository {
	return &caseRepository{repo: r}
}

func (r *Repository) ApplyFeedback(ctx context.Context, caseID types.CaseID, outcome types.Outcome, updates []model.WeightUpdate, policy *config.Policy) ([]*model.AgentWeight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.cases[caseID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", caseID))
	}
	if record.Outcome.IsSet() {
		return nil, goerr.Wrap(interfaces.ErrCaseResolved, "case already resolved", goerr.V("case_id", caseID))
	}

	record.Outcome = outcome
	updated := make([]*model.AgentWeight, 0, len(updates))
	for _, u := range updates {
		entry, exists := r.weights[u.AgentID]
		if exists {
			entry = entry.Clone()
		} else {
			entry = model.NewAgentWeight(u.AgentID, policy.DefaultWeight)
		}
		entry.RecordFeedback(u.Agree, policy.LearningRate, policy.WeightMin, policy.WeightMax)
		r.weights[u.AgentID] = entry
		updated = append(updated, entry.Clone())
	}
	return updated, nil
}

func (r *Repository) Close() error {
	return nil
}

type weightRepository struct {
	repo *Repository
}

func (x *weightRepository) Get(ctx context.Context, agentID types.AgentID) (*model.AgentWeight, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	w, exists := x.repo.weights[agentID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "agent weight not found", goerr.V("agent_id", agentID))
	}
	return w.Clone(), nil
}

func (x *weightRepository) List(ctx context.Context) ([]*model.AgentWeight, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	return sortedWeights(x.repo.weights), nil
}

func (x *weightRepository) Put(ctx context.Context, weight *model.AgentWeight) error {
	x.repo.mu.Lock()
	defer x.repo.mu.Unlock()

	x.repo.weights[weight.AgentID] = weight.Clone()
	return nil
}

type caseRepository struct {
	repo *Repository
}

func (x *caseRepository) Create(ctx context.Context, record *model.CaseRecord) (*model.CaseRecord, error) {
	x.repo.mu.Lock()
	defer x.repo.mu.Unlock()

	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewCaseID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	if _, exists := x.repo.cases[created.ID]; exists {
		return nil, goerr.New("duplicate case ID", goerr.V("case_id", created.ID))
	}

	x.repo.cases[created.ID] = created
	x.repo.order = append(x.repo.order, created.ID)
	return created.Clone(), nil
}

func (x *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.CaseRecord, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	record, exists := x.repo.cases[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", id))
	}
	return record.Clone(), nil
}

func (x *caseRepository) List(ctx context.Context) ([]*model.CaseRecord, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	records := make([]*model.CaseRecord, 0, len(x.repo.order))
	for _, id := range x.repo.order {
		records = append(records, x.repo.cases[id].Clone())
	}
	return records, nil
}
