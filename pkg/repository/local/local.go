// Package local provides the default Repository implementation: one
// human-inspectable JSON document holding agent weights and the full case
// history. The document is loaded once at open and rewritten in full after
// every mutation, so on-disk state always reflects the last completed
// operation.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
)

// document is the persisted shape of the swarm memory
type document struct {
	AgentWeights map[types.AgentID]*model.AgentWeight `json:"agent_weights"`
	CaseHistory  []*model.CaseRecord                  `json:"case_history"`
}

func emptyDocument() *document {
	return &document{
		AgentWeights: make(map[types.AgentID]*model.AgentWeight),
		CaseHistory:  []*model.CaseRecord{},
	}
}

// Repository is the file-backed swarm memory. A single RWMutex serializes
// the read-modify-write-flush sequence of every mutation; pure reads share
// the read lock.
type Repository struct {
	mu   sync.RWMutex
	path string
	doc  *document
}

var _ interfaces.Repository = &Repository{}

// New opens the memory document at path. A missing file starts empty; an
// unreadable file is preserved as <path>.corrupt and replaced with empty
// defaults, which is logged and never silently discards readable data.
func New(ctx context.Context, path string) (*Repository, error) {
	repo := &Repository{
		path: path,
		doc:  emptyDocument(),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, goerr.Wrap(err, "failed to create memory document directory", goerr.V("dir", dir))
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.From(ctx).Info("No memory document found, starting empty", "path", path)
			return repo, nil
		}
		return nil, goerr.Wrap(err, "failed to read memory document", goerr.V("path", path))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		corruptPath := path + ".corrupt"
		if renameErr := os.Rename(path, corruptPath); renameErr != nil {
			return nil, goerr.Wrap(renameErr, "failed to preserve corrupt memory document",
				goerr.V("path", path))
		}
		logging.From(ctx).Warn("Memory document is corrupt, reinitialized to empty defaults",
			"path", path,
			"preserved", corruptPath,
			logging.ErrAttr(goerr.Wrap(ErrCorrupt, err.Error())),
		)
		return repo, nil
	}

	if doc.AgentWeights == nil {
		doc.AgentWeights = make(map[types.AgentID]*model.AgentWeight)
	}
	if doc.CaseHistory == nil {
		doc.CaseHistory = []*model.CaseRecord{}
	}
	repo.doc = &doc

	return repo, nil
}

// Path returns the location of the memory document
func (r *Repository) Path() string {
	return r.path
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

	record := r.findCaseLocked(caseID)
	if record == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", caseID))
	}
	if record.Outcome.IsSet() {
		return nil, goerr.Wrap(interfaces.ErrCaseResolved, "case already resolved", goerr.V("case_id", caseID))
	}

	prevOutcome := record.Outcome
	prevWeights := make(map[types.AgentID]*model.AgentWeight, len(updates))
	for _, u := range updates {
		prevWeights[u.AgentID] = r.doc.AgentWeights[u.AgentID]
	}

	record.Outcome = outcome
	updated := make([]*model.AgentWeight, 0, len(updates))
	for _, u := range updates {
		entry, exists := r.doc.AgentWeights[u.AgentID]
		if exists {
			entry = entry.Clone()
		} else {
			entry = model.NewAgentWeight(u.AgentID, policy.DefaultWeight)
		}
		entry.RecordFeedback(u.Agree, policy.LearningRate, policy.WeightMin, policy.WeightMax)
		r.doc.AgentWeights[u.AgentID] = entry
		updated = append(updated, entry.Clone())
	}

	if err := r.flushLocked(); err != nil {
		// in-memory state is not authoritative until the flush succeeds
		record.Outcome = prevOutcome
		for id, prev := range prevWeights {
			if prev == nil {
				delete(r.doc.AgentWeights, id)
			} else {
				r.doc.AgentWeights[id] = prev
			}
		}
		return nil, goerr.Wrap(err, "failed to flush feedback", goerr.V("case_id", caseID))
	}
	return updated, nil
}

func (r *Repository) Close() error {
	return nil
}

func (r *Repository) findCaseLocked(id types.CaseID) *model.CaseRecord {
	for _, record := range r.doc.CaseHistory {
		if record.ID == id {
			return record
		}
	}
	return nil
}

// flushLocked rewrites the whole document via a temp file and rename so a
// crash mid-write never leaves a truncated document behind. Callers must
// hold the write lock.
func (r *Repository) flushLocked() error {
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode memory document")
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write memory document", goerr.V("path", tmpPath))
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return goerr.Wrap(err, "failed to replace memory document", goerr.V("path", r.path))
	}
	return nil
}

type weightRepository struct {
	repo *Repository
}

func (x *weightRepository) Get(ctx context.Context, agentID types.AgentID) (*model.AgentWeight, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	w, exists := x.repo.doc.AgentWeights[agentID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "agent weight not found", goerr.V("agent_id", agentID))
	}
	return w.Clone(), nil
}

func (x *weightRepository) List(ctx context.Context) ([]*model.AgentWeight, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	return sortedWeights(x.repo.doc.AgentWeights), nil
}

func (x *weightRepository) Put(ctx context.Context, weight *model.AgentWeight) error {
	x.repo.mu.Lock()
	defer x.repo.mu.Unlock()

	prev, existed := x.repo.doc.AgentWeights[weight.AgentID]
	x.repo.doc.AgentWeights[weight.AgentID] = weight.Clone()

	if err := x.repo.flushLocked(); err != nil {
		if existed {
			x.repo.doc.AgentWeights[weight.AgentID] = prev
		} else {
			delete(x.repo.doc.AgentWeights, weight.AgentID)
		}
		return goerr.Wrap(err, "failed to flush weight", goerr.V("agent_id", weight.AgentID))
	}
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
	if x.repo.findCaseLocked(created.ID) != nil {
		return nil, goerr.New("duplicate case ID", goerr.V("case_id", created.ID))
	}

	x.repo.doc.CaseHistory = append(x.repo.doc.CaseHistory, created)

	if err := x.repo.flushLocked(); err != nil {
		x.repo.doc.CaseHistory = x.repo.doc.CaseHistory[:len(x.repo.doc.CaseHistory)-1]
		return nil, goerr.Wrap(err, "failed to flush case", goerr.V("case_id", created.ID))
	}
	return created.Clone(), nil
}

func (x *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.CaseRecord, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	record := x.repo.findCaseLocked(id)
	if record == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", id))
	}
	return record.Clone(), nil
}

func (x *caseRepository) List(ctx context.Context) ([]*model.CaseRecord, error) {
	x.repo.mu.RLock()
	defer x.repo.mu.RUnlock()

	records := make([]*model.CaseRecord, 0, len(x.repo.doc.CaseHistory))
	for _, record := range x.repo.doc.CaseHistory {
		records = append(records, record.Clone())
	}
	return records, nil
}
