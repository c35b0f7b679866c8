// Package firestore provides a Cloud Firestore backed Repository for
// deployments that want managed storage instead of the local JSON
// document. Weights and cases live in two collections; the feedback
// back-fill runs in a Firestore transaction.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repository struct {
	client     *firestore.Client
	weightRepo *weightRepository
	caseRepo   *caseRepository
}

var _ interfaces.Repository = &Repository{}

type Option func(*Repository)

// WithCollectionPrefix namespaces the collections, e.g. for tests
func WithCollectionPrefix(prefix string) Option {
	return func(r *Repository) {
		r.weightRepo.collectionPrefix = prefix
		r.caseRepo.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Repository, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	r := &Repository{
		client:     client,
		weightRepo: newWeightRepository(client),
		caseRepo:   newCaseRepository(client),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Repository) Weights() interfaces.WeightRepository {
	return r.weightRepo
}

func (r *Repository) Cases() interfaces.CaseRepository {
	return r.caseRepo
}

func (r *Repository) ApplyFeedback(ctx context.Context, caseID types.CaseID, outcome types.Outcome, updates []model.WeightUpdate, policy *config.Policy) ([]*model.AgentWeight, error) {
	caseRef := r.client.Collection(r.caseRepo.collection()).Doc(caseID.String())

	var updated []*model.AgentWeight
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// the transaction may retry, start from a clean slate
		updated = nil

		snap, err := tx.Get(caseRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("case_id", caseID))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V("case_id", caseID))
		}

		var doc caseDoc
		if err := snap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V("case_id", caseID))
		}
		if types.Outcome(doc.Outcome).IsSet() {
			return goerr.Wrap(interfaces.ErrCaseResolved, "case already resolved", goerr.V("case_id", caseID))
		}

		// transactions require every read before the first write, so the
		// current weights are loaded and nudged up front
		entries := make([]*model.AgentWeight, 0, len(updates))
		for _, u := range updates {
			ref := r.client.Collection(r.weightRepo.collection()).Doc(u.AgentID.String())

			entry := model.NewAgentWeight(u.AgentID, policy.DefaultWeight)
			wsnap, err := tx.Get(ref)
			switch {
			case err == nil:
				var wdoc weightDoc
				if err := wsnap.DataTo(&wdoc); err != nil {
					return goerr.Wrap(err, "failed to decode agent weight", goerr.V("agent_id", u.AgentID))
				}
				entry = wdoc.toModel()
			case status.Code(err) != codes.NotFound:
				return goerr.Wrap(err, "failed to get agent weight", goerr.V("agent_id", u.AgentID))
			}

			entry.RecordFeedback(u.Agree, policy.LearningRate, policy.WeightMin, policy.WeightMax)
			entries = append(entries, entry)
		}

		if err := tx.Update(caseRef, []firestore.Update{
			{Path: "outcome", Value: outcome.String()},
		}); err != nil {
			return goerr.Wrap(err, "failed to update case outcome", goerr.V("case_id", caseID))
		}

		for _, entry := range entries {
			ref := r.client.Collection(r.weightRepo.collection()).Doc(entry.AgentID.String())
			if err := tx.Set(ref, toWeightDoc(entry)); err != nil {
				return goerr.Wrap(err, "failed to store agent weight", goerr.V("agent_id", entry.AgentID))
			}
		}
		updated = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
