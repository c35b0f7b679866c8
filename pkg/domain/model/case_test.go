package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

func TestProfileFeatures(t *testing.T) {
	t.Run("normalizes every feature into the unit range", func(t *testing.T) {
		profile := &model.Profile{
			Personal: model.Personal{YearsExperience: 100},
			Network: model.Network{
				TopSkills: []string{"go", "sql", "k8s", "aws", "terraform", "grpc", "react", "python", "rust", "kafka", "redis", "ci"},
			},
			Finances: model.Finances{
				LiquidSavings:   1000000,
				MonthlyExpenses: 2000,
			},
			Household: model.Household{Dependents: 9},
			Market: model.Market{
				MarketSignal:  1.0,
				PeerConsensus: 1.0,
			},
		}

		features := model.ProfileFeatures(profile)
		for _, value := range features {
			gt.Bool(t, value >= 0 && value <= 1).True()
		}
		gt.Value(t, features[model.FeatureRunway]).Equal(1.0)
		gt.Value(t, features[model.FeatureDependents]).Equal(1.0)
		gt.Value(t, features[model.FeatureSkills]).Equal(1.0)
	})

	t.Run("scales mid-range values", func(t *testing.T) {
		profile := &model.Profile{
			Personal: model.Personal{YearsExperience: 10},
			Finances: model.Finances{
				LiquidSavings:   36000,
				MonthlyExpenses: 3000,
			},
		}

		// runway 12 of 24 months, experience 10 of 40 years
		features := model.ProfileFeatures(profile)
		gt.Value(t, features[model.FeatureRunway]).Equal(0.5)
		gt.Value(t, features[model.FeatureExperience]).Equal(0.25)
	})
}

func TestFeatureSimilarity(t *testing.T) {
	profile := &model.Profile{
		Personal: model.Personal{YearsExperience: 8},
		Finances: model.Finances{LiquidSavings: 24000, MonthlyExpenses: 3000},
		Market:   model.Market{MarketSignal: 0.6, PeerConsensus: 0.7},
	}

	t.Run("identical vectors score one", func(t *testing.T) {
		features := model.ProfileFeatures(profile)
		gt.Value(t, model.FeatureSimilarity(features, features)).Equal(1.0)
	})

	t.Run("is symmetric", func(t *testing.T) {
		other := &model.Profile{
			Personal: model.Personal{YearsExperience: 20},
			Finances: model.Finances{LiquidSavings: 5000, MonthlyExpenses: 4000},
			Market:   model.Market{MarketSignal: 0.2},
		}
		a := model.ProfileFeatures(profile)
		b := model.ProfileFeatures(other)
		gt.Value(t, model.FeatureSimilarity(a, b)).Equal(model.FeatureSimilarity(b, a))
	})

	t.Run("stays within the unit range", func(t *testing.T) {
		a := map[string]float64{model.FeatureRunway: 0}
		b := map[string]float64{model.FeatureRunway: 1}
		sim := model.FeatureSimilarity(a, b)
		gt.Bool(t, sim >= 0 && sim <= 1).True()
	})

	t.Run("closer profiles score higher", func(t *testing.T) {
		base := model.ProfileFeatures(profile)

		near := &model.Profile{
			Personal: model.Personal{YearsExperience: 9},
			Finances: model.Finances{LiquidSavings: 27000, MonthlyExpenses: 3000},
			Market:   model.Market{MarketSignal: 0.6, PeerConsensus: 0.7},
		}
		far := &model.Profile{
			Personal:  model.Personal{YearsExperience: 35},
			Finances:  model.Finances{LiquidSavings: 500, MonthlyExpenses: 5000},
			Household: model.Household{Dependents: 4},
			Market:    model.Market{MarketSignal: 0.1, PeerConsensus: 0.1},
		}

		nearSim := model.FeatureSimilarity(base, model.ProfileFeatures(near))
		farSim := model.FeatureSimilarity(base, model.ProfileFeatures(far))
		gt.Bool(t, nearSim > farSim).True()
	})
}

func TestCaseRecordClone(t *testing.T) {
	record := &model.CaseRecord{
		ID: types.NewCaseID(),
		Signals: []model.AgentSignal{
			{AgentID: types.AgentFinanceRunway, Score: 70, Rationale: []string{"runway 10 months"}},
		},
		WeightsUsed: map[types.AgentID]float64{types.AgentFinanceRunway: 1.0},
		RedFlags:    []string{"flag"},
		Features:    map[string]float64{model.FeatureRunway: 0.4},
	}

	copied := record.Clone()
	copied.Signals[0].Rationale[0] = "changed"
	copied.WeightsUsed[types.AgentFinanceRunway] = 9
	copied.RedFlags[0] = "changed"
	copied.Features[model.FeatureRunway] = 9

	gt.Value(t, record.Signals[0].Rationale[0]).Equal("runway 10 months")
	gt.Value(t, record.WeightsUsed[types.AgentFinanceRunway]).Equal(1.0)
	gt.Value(t, record.RedFlags[0]).Equal("flag")
	gt.Value(t, record.Features[model.FeatureRunway]).Equal(0.4)
}
