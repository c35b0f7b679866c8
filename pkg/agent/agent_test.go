package agent_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/quitswarm/quitswarm/pkg/agent"
	"github.com/quitswarm/quitswarm/pkg/domain/model"
	"github.com/quitswarm/quitswarm/pkg/domain/types"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestRegistry(t *testing.T) {
	registry := agent.Default()

	t.Run("all agents registered in canonical order", func(t *testing.T) {
		ids := registry.IDs()
		gt.Array(t, ids).Length(8)
		gt.Value(t, ids[0]).Equal(types.AgentFinanceRunway)
		gt.Value(t, ids[7]).Equal(types.AgentFinalSynthesis)
	})

	t.Run("Find returns registered agents and nil otherwise", func(t *testing.T) {
		gt.Value(t, registry.Find(types.AgentPeerSentiment).ID()).Equal(types.AgentPeerSentiment)
		gt.Value(t, registry.Find(types.AgentID("unknown"))).Nil()
	})

	t.Run("every agent has a remediation step", func(t *testing.T) {
		for _, a := range registry.Agents() {
			gt.Value(t, a.Remediation()).NotEqual("")
		}
	})
}

func TestAgentsRejectNilProfile(t *testing.T) {
	for _, a := range agent.Default().Agents() {
		_, err := a.Evaluate(nil)
		gt.Error(t, err)
	}
}

func TestAgentScoresStayBounded(t *testing.T) {
	profiles := []*model.Profile{
		{}, // everything defaulted
		{
			Personal: model.Personal{YearsExperience: 40, RiskTolerance: "high", CareerGoal: "start a consultancy"},
			Network: model.Network{
				TopSkills:         []string{"go", "sql", "k8s", "aws", "terraform", "grpc", "react", "python", "rust", "kafka", "redis"},
				EndorsementsLevel: "strong",
				NetworkReach:      "large",
				RecentPosts:       20,
			},
			Finances: model.Finances{
				MonthlyExpenses: 2000,
				LiquidSavings:   500000,
				Investments:     200000,
				HealthInsurance: boolPtr(true),
			},
			Household: model.Household{PartnerIncomeStable: true, SupportLevel: "high"},
			Market: model.Market{
				MarketSignal:   1.0,
				PeerConsensus:  1.0,
				MentorEndorses: true,
				NewsSentiment:  1.0,
			},
		},
		{
			Personal: model.Personal{YearsExperience: 1, RiskTolerance: "low"},
			Network:  model.Network{EndorsementsLevel: "weak", NetworkReach: "small"},
			Finances: model.Finances{
				MonthlyExpenses: 6000,
				LiquidSavings:   1000,
				Debt:            200000,
				HealthInsurance: boolPtr(false),
			},
			Household: model.Household{Dependents: 4, SupportLevel: "low"},
			Market: model.Market{
				MarketSignal:   0.01,
				PeerConsensus:  0.01,
				NewsSentiment:  -1.0,
				LayoffMentions: 12,
			},
		},
	}

	for _, profile := range profiles {
		for _, a := range agent.Default().Agents() {
			signal, err := a.Evaluate(profile)
			gt.NoError(t, err).Required()
			gt.Bool(t, signal.Score >= 0 && signal.Score <= 100).True()
			gt.Bool(t, signal.Stance.IsValid()).True()
			gt.Value(t, signal.AgentID).Equal(a.ID())
		}
	}
}

func TestFinanceRunway(t *testing.T) {
	ag := &agent.FinanceRunway{}

	t.Run("long runway with insurance scores high", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{
				MonthlyIncome:   9000,
				MonthlyExpenses: 4000,
				LiquidSavings:   60000,
				HealthInsurance: boolPtr(true),
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(73.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
		gt.Array(t, signal.RedFlags).Length(0)
	})

	t.Run("unknown insurance is noted but not penalized", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{
				MonthlyExpenses: 4000,
				LiquidSavings:   60000,
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(73.0)
	})

	t.Run("short runway without insurance is flagged", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{
				MonthlyExpenses: 3000,
				LiquidSavings:   6000,
				HealthInsurance: boolPtr(false),
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(8.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
		gt.Array(t, signal.RedFlags).Length(2)
		gt.Array(t, signal.RedFlags).Has("Runway below 4 months")
	})

	t.Run("missing expenses fall back to the default", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{LiquidSavings: 30000},
		})
		gt.NoError(t, err).Required()
		// runway 10 months on the default burn of 3000
		gt.Value(t, signal.Score).Equal(55.0)
		gt.Array(t, signal.Rationale).Has("Monthly expenses missing, default of 3000 assumed")
	})

	t.Run("heavy debt subtracts and investments add", func(t *testing.T) {
		base, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{MonthlyExpenses: 3000, LiquidSavings: 60000, HealthInsurance: boolPtr(true)},
		})
		gt.NoError(t, err).Required()

		indebted, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{MonthlyExpenses: 3000, LiquidSavings: 60000, Debt: 40000, HealthInsurance: boolPtr(true)},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, indebted.Score).Equal(base.Score - 10)

		invested, err := ag.Evaluate(&model.Profile{
			Finances: model.Finances{MonthlyExpenses: 3000, LiquidSavings: 60000, Investments: 24000, HealthInsurance: boolPtr(true)},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, invested.Score).Equal(base.Score + 7)
	})
}

func TestMarketReadiness(t *testing.T) {
	ag := &agent.MarketReadiness{}

	t.Run("strong network maxes out", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Network: model.Network{
				TopSkills:         []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
				EndorsementsLevel: "strong",
				NetworkReach:      "large",
				RecentPosts:       6,
			},
		})
		gt.NoError(t, err).Required()
		// 30 + 8*4 + 20 + 12 + 8 clamps at 100
		gt.Value(t, signal.Score).Equal(100.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
	})

	t.Run("empty network flags thin skills", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(33.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
		gt.Array(t, signal.RedFlags).Has("Fewer than 3 demonstrated skills for a market transition")
	})
}

func TestHouseholdRisk(t *testing.T) {
	ag := &agent.HouseholdRisk{}

	t.Run("supported household scores high", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Household: model.Household{
				PartnerIncomeStable: true,
				SupportLevel:        "high",
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(80.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
	})

	t.Run("dependents without partner buffer are flagged", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Finances:  model.Finances{MonthlyExpenses: 3000, LiquidSavings: 3000},
			Household: model.Household{Dependents: 2},
		})
		gt.NoError(t, err).Required()
		// 55 - 15 - 10 - 12 with a one month runway
		gt.Value(t, signal.Score).Equal(18.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
		gt.Array(t, signal.RedFlags).Has("Dependents with unstable partner income")
	})
}

func TestPositioningStrength(t *testing.T) {
	ag := &agent.PositioningStrength{}

	t.Run("skill count is capped at ten", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Network: model.Network{
				TopSkills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
			},
		})
		gt.NoError(t, err).Required()
		// 25 + 10*5 - 8 for no recent posts
		gt.Value(t, signal.Score).Equal(67.0)
	})

	t.Run("thin public profile scores low", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Network: model.Network{EndorsementsLevel: "weak", NetworkReach: "small"},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(1.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
	})
}

func TestPeerSentiment(t *testing.T) {
	ag := &agent.PeerSentiment{}

	t.Run("strong consensus with mentor favors quitting", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Market: model.Market{PeerConsensus: 0.9, MentorEndorses: true},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, signal.Score >= 85).True()
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
	})

	t.Run("peers against quitting are flagged", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Market: model.Market{PeerConsensus: 0.2},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, signal.Score < 45).True()
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
		gt.Array(t, signal.RedFlags).Has("Peer consensus strongly against quitting")
	})

	t.Run("missing consensus defaults to neutral without a flag", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(50.0)
		gt.Value(t, signal.Stance).Equal(types.StanceNeutral)
		gt.Array(t, signal.RedFlags).Length(0)
	})
}

func TestJobMarketHeat(t *testing.T) {
	ag := &agent.JobMarketHeat{}

	t.Run("hot market with senior experience scores high", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Personal: model.Personal{YearsExperience: 12},
			Market:   model.Market{MarketSignal: 0.9},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, signal.Score >= 80).True()
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
	})

	t.Run("cold market with junior experience scores low", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Personal: model.Personal{YearsExperience: 1},
			Market:   model.Market{MarketSignal: 0.1},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, signal.Score < 30).True()
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
	})
}

func TestNewsOutlook(t *testing.T) {
	ag := &agent.NewsOutlook{}

	t.Run("neutral sentiment sits in the middle", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(50.0)
		gt.Value(t, signal.Stance).Equal(types.StanceNeutral)
	})

	t.Run("layoff penalty is capped", func(t *testing.T) {
		few, err := ag.Evaluate(&model.Profile{
			Market: model.Market{LayoffMentions: 4},
		})
		gt.NoError(t, err).Required()
		many, err := ag.Evaluate(&model.Profile{
			Market: model.Market{LayoffMentions: 40},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, few.Score).Equal(many.Score)
		gt.Value(t, few.Score).Equal(30.0)
		gt.Array(t, few.RedFlags).Has("Repeated layoff mentions in sector news")
	})

	t.Run("sentiment is clamped to its range", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Market: model.Market{NewsSentiment: 5},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(85.0)
	})
}

func TestFinalSynthesis(t *testing.T) {
	ag := &agent.FinalSynthesis{}

	t.Run("prepared profile gets a strong sanity vote", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Personal: model.Personal{RiskTolerance: "high", CareerGoal: "independent consulting"},
			Finances: model.Finances{MonthlyExpenses: 3000, LiquidSavings: 36000},
			Market:   model.Market{MarketSignal: 0.7},
		})
		gt.NoError(t, err).Required()
		// 45 + 10 + 15 + 10 + 5 + 5
		gt.Value(t, signal.Score).Equal(90.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorQuit)
	})

	t.Run("cautious profile without runway votes stay", func(t *testing.T) {
		signal, err := ag.Evaluate(&model.Profile{
			Personal:  model.Personal{RiskTolerance: "low"},
			Household: model.Household{Dependents: 1},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, signal.Score).Equal(25.0)
		gt.Value(t, signal.Stance).Equal(types.StanceFavorStay)
	})
}

func TestAgentDeterminism(t *testing.T) {
	profile := &model.Profile{
		Personal: model.Personal{YearsExperience: 6, RiskTolerance: "medium"},
		Network:  model.Network{TopSkills: []string{"go", "sql"}, RecentPosts: 3},
		Finances: model.Finances{MonthlyExpenses: 3500, LiquidSavings: 28000},
		Market:   model.Market{MarketSignal: 0.55, PeerConsensus: 0.6},
	}

	for _, a := range agent.Default().Agents() {
		first, err := a.Evaluate(profile)
		gt.NoError(t, err).Required()
		second, err := a.Evaluate(profile)
		gt.NoError(t, err).Required()
		gt.Value(t, second).Equal(first)
	}
}
