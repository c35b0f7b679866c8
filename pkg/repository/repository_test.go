package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/quitswarm/quitswarm/pkg/domain/interfaces"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/model/config"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
	"github.com/quitswarm/quitswarm/pkg/repository/firestore"
	"github.com/quitswarm/quitswarm/pkg/repository/local"
	"github.com/quitswarm/quitswarm/pkg/repository/memory"
)

func testCaseRecord() *model.CaseRecord {
	return &model.CaseRecord{
		Input: model.Profile{
			Personal: model.Personal{
				CurrentRole:     "backend engineer",
				YearsExperience: 7,
			},
			Finances: model.Finances{
				MonthlyIncome:   9000,
				MonthlyExpenses: 4000,
				LiquidSavings:   60000,
			},
		},
		Signals: []model.AgentSignal{
			{
				AgentID:   types.AgentFinanceRunway,
				Score:     85,
				Rationale: []string{"runway 15.0 months"},
				Stance:    types.StanceFavorQuit,
			},
			{
				AgentID:  types.AgentHouseholdRisk,
				Score:    40,
				RedFlags: []string{"No health insurance plan after quitting"},
				Stance:   types.StanceFavorStay,
			},
		},
		WeightsUsed: map[types.AgentID]float64{
			types.AgentFinanceRunway: 1.0,
			types.AgentHouseholdRisk: 1.2,
		},
		AggregateScore: 64.5,
		Recommendation: types.RecommendationQuit,
		QuitWindow:     types.QuitWindowNow,
		RedFlags:       []string{"No health insurance plan after quitting"},
		ActionPlan: []model.ActionItem{
			{AgentID: types.AgentHouseholdRisk, Score: 40, Step: "Line up health insurance and a family budget before resigning"},
		},
		Features: map[string]float64{
			model.FeatureRunway:     0.625,
			model.FeatureExperience: 0.175,
		},
	}
}

func runWeightRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns error for unknown agent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Weights().Get(ctx, types.AgentNewsOutlook)
		gt.Value(t, err).NotNil()
	})

	t.Run("Put then Get round-trips the entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		weight := &model.AgentWeight{
			AgentID: types.AgentFinanceRunway,
			Weight:  1.37,
			Scorecard: model.Scorecard{
				FeedbackCount:  4,
				AgreementCount: 3,
			},
		}
		gt.NoError(t, repo.Weights().Put(ctx, weight)).Required()

		got, err := repo.Weights().Get(ctx, types.AgentFinanceRunway)
		gt.NoError(t, err).Required()
		gt.Value(t, got.AgentID).Equal(types.AgentFinanceRunway)
		gt.Value(t, got.Weight).Equal(1.37)
		gt.Value(t, got.Scorecard.FeedbackCount).Equal(4)
		gt.Value(t, got.Scorecard.AgreementCount).Equal(3)
	})

	t.Run("Put overwrites an existing entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Weights().Put(ctx, model.NewAgentWeight(types.AgentPeerSentiment, 1.0))).Required()
		gt.NoError(t, repo.Weights().Put(ctx, model.NewAgentWeight(types.AgentPeerSentiment, 2.5))).Required()

		got, err := repo.Weights().Get(ctx, types.AgentPeerSentiment)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Weight).Equal(2.5)
	})

	t.Run("List returns entries sorted by agent ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Weights().Put(ctx, model.NewAgentWeight(types.AgentPeerSentiment, 1.1))).Required()
		gt.NoError(t, repo.Weights().Put(ctx, model.NewAgentWeight(types.AgentFinanceRunway, 0.9))).Required()

		weights, err := repo.Weights().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, weights).Length(2)
		gt.Value(t, weights[0].AgentID).Equal(types.AgentFinanceRunway)
		gt.Value(t, weights[1].AgentID).Equal(types.AgentPeerSentiment)
	})

	t.Run("Get returns a copy, not shared state", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Weights().Put(ctx, model.NewAgentWeight(types.AgentJobMarketHeat, 1.0))).Required()

		first, err := repo.Weights().Get(ctx, types.AgentJobMarketHeat)
		gt.NoError(t, err).Required()
		first.Weight = 99

		second, err := repo.Weights().Get(ctx, types.AgentJobMarketHeat)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Weight).Equal(1.0)
	})
}

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Cases().Create(ctx, testCaseRecord())
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.CaseID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.Outcome.IsSet()).Equal(false)
	})

	t.Run("Get round-trips the full record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Cases().Create(ctx, testCaseRecord())
		gt.NoError(t, err).Required()

		got, err := repo.Cases().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.AggregateScore).Equal(64.5)
		gt.Value(t, got.Recommendation).Equal(types.RecommendationQuit)
		gt.Value(t, got.QuitWindow).Equal(types.QuitWindowNow)
		gt.Array(t, got.Signals).Length(2)
		gt.Value(t, got.Signals[0].AgentID).Equal(types.AgentFinanceRunway)
		gt.Value(t, got.Signals[1].RedFlags[0]).Equal("No health insurance plan after quitting")
		gt.Value(t, got.WeightsUsed[types.AgentHouseholdRisk]).Equal(1.2)
		gt.Value(t, got.Features[model.FeatureRunway]).Equal(0.625)
		gt.Array(t, got.ActionPlan).Length(1)
		gt.Value(t, got.Input.Personal.CurrentRole).Equal("backend engineer")
	})

	t.Run("Get returns error for unknown case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Cases().Get(ctx, types.NewCaseID())
		gt.Value(t, err).NotNil()
	})

	t.Run("List returns cases in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := testCaseRecord()
		first.CreatedAt = time.Now().UTC().Add(-time.Hour)
		second := testCaseRecord()
		second.AggregateScore = 30

		createdFirst, err := repo.Cases().Create(ctx, first)
		gt.NoError(t, err).Required()
		createdSecond, err := repo.Cases().Create(ctx, second)
		gt.NoError(t, err).Required()

		records, err := repo.Cases().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		gt.Value(t, records[0].ID).Equal(createdFirst.ID)
		gt.Value(t, records[1].ID).Equal(createdSecond.ID)
	})
}

func runApplyFeedbackTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()
	policy := config.DefaultPolicy()

	t.Run("applies outcome and nudged weights together", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Cases().Create(ctx, testCaseRecord())
		gt.NoError(t, err).Required()

		updates := []model.WeightUpdate{{AgentID: types.AgentFinanceRunway, Agree: true}}
		updated, err := repo.ApplyFeedback(ctx, created.ID, types.OutcomePositive, updates, policy)
		gt.NoError(t, err).Required()
		gt.Array(t, updated).Length(1)
		gt.Value(t, updated[0].Weight).Equal(model.NextWeight(policy.DefaultWeight, true,
			policy.LearningRate, policy.WeightMin, policy.WeightMax))

		got, err := repo.Cases().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Outcome).Equal(types.OutcomePositive)

		weight, err := repo.Weights().Get(ctx, types.AgentFinanceRunway)
		gt.NoError(t, err).Required()
		gt.Value(t, weight.Weight).Equal(updated[0].Weight)
		gt.Value(t, weight.Scorecard.FeedbackCount).Equal(1)
		gt.Value(t, weight.Scorecard.AgreementCount).Equal(1)
	})

	t.Run("nudges the stored weight, not a caller snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		expected := policy.DefaultWeight
		for i := 0; i < 2; i++ {
			created, err := repo.Cases().Create(ctx, testCaseRecord())
			gt.NoError(t, err).Required()

			updates := []model.WeightUpdate{{AgentID: types.AgentFinanceRunway, Agree: true}}
			_, err = repo.ApplyFeedback(ctx, created.ID, types.OutcomePositive, updates, policy)
			gt.NoError(t, err).Required()
			expected = model.NextWeight(expected, true,
				policy.LearningRate, policy.WeightMin, policy.WeightMax)
		}

		weight, err := repo.Weights().Get(ctx, types.AgentFinanceRunway)
		gt.NoError(t, err).Required()
		gt.Value(t, weight.Weight).Equal(expected)
		gt.Value(t, weight.Scorecard.FeedbackCount).Equal(2)
	})

	t.Run("concurrent feedback on separate cases never loses an update", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const workers = 8
		ids := make([]types.CaseID, workers)
		for i := range ids {
			created, err := repo.Cases().Create(ctx, testCaseRecord())
			gt.NoError(t, err).Required()
			ids[i] = created.ID
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id types.CaseID) {
				defer wg.Done()
				updates := []model.WeightUpdate{{AgentID: types.AgentFinanceRunway, Agree: true}}
				_, err := repo.ApplyFeedback(ctx, id, types.OutcomePositive, updates, policy)
				gt.NoError(t, err)
			}(id)
		}
		wg.Wait()

		expected := policy.DefaultWeight
		for i := 0; i < workers; i++ {
			expected = model.NextWeight(expected, true,
				policy.LearningRate, policy.WeightMin, policy.WeightMax)
		}

		weight, err := repo.Weights().Get(ctx, types.AgentFinanceRunway)
		gt.NoError(t, err).Required()
		gt.Value(t, weight.Weight).Equal(expected)
		gt.Value(t, weight.Scorecard.FeedbackCount).Equal(workers)
		gt.Value(t, weight.Scorecard.AgreementCount).Equal(workers)
	})

	t.Run("fails for unknown case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.ApplyFeedback(ctx, types.NewCaseID(), types.OutcomePositive, nil, policy)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("rejects a second outcome and keeps weights unchanged", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Cases().Create(ctx, testCaseRecord())
		gt.NoError(t, err).Required()

		updates := []model.WeightUpdate{{AgentID: types.AgentFinanceRunway, Agree: false}}
		first, err := repo.ApplyFeedback(ctx, created.ID, types.OutcomeNegative, updates, policy)
		gt.NoError(t, err).Required()
		gt.Array(t, first).Length(1)

		_, err = repo.ApplyFeedback(ctx, created.ID, types.OutcomePositive, updates, policy)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrCaseResolved)).True()

		got, err := repo.Cases().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Outcome).Equal(types.OutcomeNegative)

		weight, err := repo.Weights().Get(ctx, types.AgentFinanceRunway)
		gt.NoError(t, err).Required()
		gt.Value(t, weight.Weight).Equal(first[0].Weight)
		gt.Value(t, weight.Scorecard.FeedbackCount).Equal(1)
	})

	t.Run("neutral outcome resolves the case without weights", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Cases().Create(ctx, testCaseRecord())
		gt.NoError(t, err).Required()

		updated, err := repo.ApplyFeedback(ctx, created.ID, types.OutcomeNeutral, nil, policy)
		gt.NoError(t, err).Required()
		gt.Array(t, updated).Length(0)

		got, err := repo.Cases().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Outcome).Equal(types.OutcomeNeutral)

		weights, err := repo.Weights().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, weights).Length(0)
	})
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Weights", func(t *testing.T) { runWeightRepositoryTest(t, newRepo) })
	t.Run("Cases", func(t *testing.T) { runCaseRepositoryTest(t, newRepo) })
	t.Run("ApplyFeedback", func(t *testing.T) { runApplyFeedbackTest(t, newRepo) })
}

func TestRepository_Memory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRepository_Local(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := local.New(context.Background(), filepath.Join(t.TempDir(), "memory.json"))
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		// fresh collections per sub-test so count assertions hold
		prefix := "test_" + types.NewCaseID().String()
		repo, err := firestore.New(context.Background(), projectID, "",
			firestore.WithCollectionPrefix(prefix))
		gt.NoError(t, err).Required()
		return repo
	})
}
