package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// signalDoc is the stored shape of an AgentSignal
type signalDoc struct {
	AgentID   string   `firestore:"agent_id"`
	Score     float64  `firestore:"score"`
	Rationale []string `firestore:"rationale"`
	RedFlags  []string `firestore:"red_flags"`
	Stance    string   `firestore:"stance"`
}

// actionDoc is the stored shape of an ActionItem
type actionDoc struct {
	AgentID string  `firestore:"agent_id"`
	Score   float64 `firestore:"score"`
	Step    string  `firestore:"step"`
}

// caseDoc is the stored shape of a CaseRecord. Maps keyed by AgentID are
// flattened to string keys for Firestore.
type caseDoc struct {
	ID             string             `firestore:"case_id"`
	CreatedAt      time.Time          `firestore:"created_at"`
	Input          model.Profile      `firestore:"input"`
	Signals        []signalDoc        `firestore:"signals"`
	WeightsUsed    map[string]float64 `firestore:"weights_used"`
	AggregateScore float64            `firestore:"aggregate_score"`
	Recommendation string             `firestore:"recommendation"`
	QuitWindow     string             `firestore:"quit_window"`
	RedFlags       []string           `firestore:"red_flags"`
	ActionPlan     []actionDoc        `firestore:"action_plan"`
	Trace          []string           `firestore:"trace"`
	Features       map[string]float64 `firestore:"features"`
	Outcome        string             `firestore:"outcome"`
}

func toCaseDoc(record *model.CaseRecord) *caseDoc {
	doc := &caseDoc{
		ID:             record.ID.String(),
		CreatedAt:      record.CreatedAt,
		Input:          record.Input,
		WeightsUsed:    make(map[string]float64, len(record.WeightsUsed)),
		AggregateScore: record.AggregateScore,
		Recommendation: record.Recommendation.String(),
		QuitWindow:     record.QuitWindow.String(),
		RedFlags:       record.RedFlags,
		Trace:          record.Trace,
		Features:       record.Features,
		Outcome:        record.Outcome.String(),
	}
	for id, w := range record.WeightsUsed {
		doc.WeightsUsed[id.String()] = w
	}
	for _, sig := range record.Signals {
		doc.Signals = append(doc.Signals, signalDoc{
			AgentID:   sig.AgentID.String(),
			Score:     sig.Score,
			Rationale: sig.Rationale,
			RedFlags:  sig.RedFlags,
			Stance:    sig.Stance.String(),
		})
	}
	for _, item := range record.ActionPlan {
		doc.ActionPlan = append(doc.ActionPlan, actionDoc{
			AgentID: item.AgentID.String(),
			Score:   item.Score,
			Step:    item.Step,
		})
	}
	return doc
}

func (x *caseDoc) toModel() *model.CaseRecord {
	record := &model.CaseRecord{
		ID:             types.CaseID(x.ID),
		CreatedAt:      x.CreatedAt,
		Input:          x.Input,
		WeightsUsed:    make(map[types.AgentID]float64, len(x.WeightsUsed)),
		AggregateScore: x.AggregateScore,
		Recommendation: types.Recommendation(x.Recommendation),
		QuitWindow:     types.QuitWindow(x.QuitWindow),
		RedFlags:       x.RedFlags,
		Trace:          x.Trace,
		Features:       x.Features,
		Outcome:        types.Outcome(x.Outcome),
	}
	for id, w := range x.WeightsUsed {
		record.WeightsUsed[types.AgentID(id)] = w
	}
	for _, sig := range x.Signals {
		record.Signals = append(record.Signals, model.AgentSignal{
			AgentID:   types.AgentID(sig.AgentID),
			Score:     sig.Score,
			Rationale: sig.Rationale,
			RedFlags:  sig.RedFlags,
			Stance:    types.Stance(sig.Stance),
		})
	}
	for _, item := range x.ActionPlan {
		record.ActionPlan = append(record.ActionPlan, model.ActionItem{
			AgentID: types.AgentID(item.AgentID),
			Score:   item.Score,
			Step:    item.Step,
		})
	}
	return record
}

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

func (r *caseRepository) Create(ctx context.Context, record *model.CaseRecord) (*model.CaseRecord, error) {
	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewCaseID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	ref := r.client.Collection(r.collection()).Doc(created.ID.String())
	if _, err := ref.Create(ctx, toCaseDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V("case_id", created.ID))
	}
	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.CaseRecord, error) {
	snap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("case_id", id))
	}

	var doc caseDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("case_id", id))
	}
	return doc.toModel(), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.CaseRecord, error) {
	iter := r.client.Collection(r.collection()).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var records []*model.CaseRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var doc caseDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", snap.Ref.ID))
		}
		records = append(records, doc.toModel())
	}
	return records, nil
}
