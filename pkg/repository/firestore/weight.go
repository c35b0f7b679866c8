package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// weightDoc is the stored shape of an AgentWeight
type weightDoc struct {
	AgentID        string  `firestore:"agent_id"`
	Weight         float64 `firestore:"weight"`
	FeedbackCount  int     `firestore:"feedback_count"`
	AgreementCount int     `firestore:"agreement_count"`
}

func toWeightDoc(w *model.AgentWeight) *weightDoc {
	return &weightDoc{
		AgentID:        w.AgentID.String(),
		Weight:         w.Weight,
		FeedbackCount:  w.Scorecard.FeedbackCount,
		AgreementCount: w.Scorecard.AgreementCount,
	}
}

func (x *weightDoc) toModel() *model.AgentWeight {
	return &model.AgentWeight{
		AgentID: types.AgentID(x.AgentID),
		Weight:  x.Weight,
		Scorecard: model.Scorecard{
			FeedbackCount:  x.FeedbackCount,
			AgreementCount: x.AgreementCount,
		},
	}
}

type weightRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWeightRepository(client *firestore.Client) *weightRepository {
	return &weightRepository{client: client}
}

func (r *weightRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_agent_weights"
	}
	return "agent_weights"
}

func (r *weightRepository) Get(ctx context.Context, agentID types.AgentID) (*model.AgentWeight, error) {
	snap, err := r.client.Collection(r.collection()).Doc(agentID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "agent weight not found", goerr.V("agent_id", agentID))
		}
		return nil, goerr.Wrap(err, "failed to get agent weight", goerr.V("agent_id", agentID))
	}

	var doc weightDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode agent weight", goerr.V("agent_id", agentID))
	}
	return doc.toModel(), nil
}

func (r *weightRepository) List(ctx context.Context) ([]*model.AgentWeight, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var weights []*model.AgentWeight
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate agent weights")
		}

		var doc weightDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode agent weight", goerr.V("doc_id", snap.Ref.ID))
		}
		weights = append(weights, doc.toModel())
	}

	sort.Slice(weights, func(i, j int) bool {
		return weights[i].AgentID < weights[j].AgentID
	})
	return weights, nil
}

func (r *weightRepository) Put(ctx context.Context, weight *model.AgentWeight) error {
	_, err := r.client.Collection(r.collection()).Doc(weight.AgentID.String()).Set(ctx, toWeightDoc(weight))
	if err != nil {
		return goerr.Wrap(err, "failed to store agent weight", goerr.V("agent_id", weight.AgentID))
	}
	return nil
}
