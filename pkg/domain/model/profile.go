package model

import "strings"

// Default values applied when a profile field is missing or malformed.
// Agents report in their rationale whenever a default was used.
const (
	DefaultMonthlyExpenses = 3000.0
	DefaultYearsExperience = 5.0
	DefaultPeerConsensus   = 0.5
	DefaultMarketSignal    = 0.5
	minMonthlyBurn         = 1.0
)

// Profile is the normalized input record for a decision. It is supplied by
// external collaborators (profile importers, scrapers) and is never mutated
// by the engine. All categorical levels are lower-case strings.
type Profile struct {
	Personal  Personal  `json:"personal"`
	Network   Network   `json:"network"`
	Finances  Finances  `json:"finances"`
	Household Household `json:"household"`
	Market    Market    `json:"market"`
}

// Personal holds background fields about the person deciding
type Personal struct {
	Age             int     `json:"age"`
	CurrentRole     string  `json:"current_role"`
	YearsExperience float64 `json:"years_experience"`
	Location        string  `json:"location"`
	RiskTolerance   string  `json:"risk_tolerance"` // low, medium, high
	CareerGoal      string  `json:"career_goal_12_months"`
}

// Network holds professional-network positioning fields
type Network struct {
	ProfileURL        string   `json:"profile_url"`
	TopSkills         []string `json:"top_skills"`
	EndorsementsLevel string   `json:"endorsements_level"` // weak, moderate, strong
	NetworkReach      string   `json:"network_reach"`      // small, medium, large
	RecentPosts       int      `json:"recent_relevant_posts"`
}

// Finances holds the monthly cash picture
type Finances struct {
	MonthlyIncome    float64 `json:"monthly_income"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	LiquidSavings    float64 `json:"liquid_savings"`
	Debt             float64 `json:"debt"`
	SideIncome       float64 `json:"expected_side_income"`
	Investments      float64 `json:"other_investments"`
	InvestmentIncome float64 `json:"expected_investment_income"`
	HealthInsurance  *bool   `json:"health_insurance_if_quit,omitempty"`
}

// Household holds family and dependent context
type Household struct {
	Dependents          int      `json:"dependents_count"`
	PartnerIncomeStable bool     `json:"partner_income_stable"`
	SupportLevel        string   `json:"family_support_level"` // low, medium, high
	MajorEvents         []string `json:"major_events_next_12_months"`
}

// Market holds externally resolved market and sentiment signals. The
// collaborators that fetch these (job boards, peer surveys, news feeds)
// hand them over as plain numbers; a zero PeerConsensus means no data.
type Market struct {
	MarketSignal   float64 `json:"market_signal"`  // hiring heat, 0..1
	PeerConsensus  float64 `json:"peer_consensus"` // peer approval, 0..1, 0 = unknown
	MentorEndorses bool    `json:"mentor_endorses"`
	NewsSentiment  float64 `json:"news_sentiment"` // sector outlook, -1..1
	LayoffMentions int     `json:"layoff_mentions"`
}

// IsZero reports whether the profile carries no usable information at all.
// A zero profile is a validation error for Decide.
func (x *Profile) IsZero() bool {
	if x == nil {
		return true
	}
	return x.Personal.CurrentRole == "" &&
		x.Personal.YearsExperience == 0 &&
		x.Personal.Age == 0 &&
		len(x.Network.TopSkills) == 0 &&
		x.Network.RecentPosts == 0 &&
		x.Finances.MonthlyIncome == 0 &&
		x.Finances.MonthlyExpenses == 0 &&
		x.Finances.LiquidSavings == 0 &&
		x.Finances.Debt == 0 &&
		x.Household.Dependents == 0 &&
		x.Market.MarketSignal == 0 &&
		x.Market.PeerConsensus == 0 &&
		x.Market.NewsSentiment == 0
}

// MonthlyExpensesOrDefault returns the monthly expenses, substituting the
// documented default for missing values. The second return reports whether
// the default was applied.
func (x *Finances) MonthlyExpensesOrDefault() (float64, bool) {
	if x.MonthlyExpenses <= 0 {
		return DefaultMonthlyExpenses, true
	}
	return x.MonthlyExpenses, false
}

// NetBurn is the monthly cash outflow after expected side and investment
// income, floored at a minimal positive burn to keep runway finite.
func (x *Finances) NetBurn() float64 {
	expenses, _ := x.MonthlyExpensesOrDefault()
	burn := expenses - x.SideIncome - x.InvestmentIncome
	if burn < minMonthlyBurn {
		return minMonthlyBurn
	}
	return burn
}

// RunwayMonths is the number of months liquid savings cover the net burn
func (x *Finances) RunwayMonths() float64 {
	return x.LiquidSavings / x.NetBurn()
}

// YearsExperienceOrDefault returns the years of experience, substituting
// the documented default for missing values.
func (x *Personal) YearsExperienceOrDefault() (float64, bool) {
	if x.YearsExperience <= 0 {
		return DefaultYearsExperience, true
	}
	return x.YearsExperience, false
}

// RiskToleranceLevel normalizes the risk tolerance to low/medium/high,
// defaulting to medium.
func (x *Personal) RiskToleranceLevel() (string, bool) {
	return normalizeLevel(x.RiskTolerance, "low", "medium", "high")
}

// EndorsementsStrength normalizes the endorsement level to
// weak/moderate/strong, defaulting to moderate.
func (x *Network) EndorsementsStrength() (string, bool) {
	return normalizeLevel(x.EndorsementsLevel, "weak", "moderate", "strong")
}

// Reach normalizes the network reach to small/medium/large, defaulting to
// medium.
func (x *Network) Reach() (string, bool) {
	return normalizeLevel(x.NetworkReach, "small", "medium", "large")
}

// Support normalizes the family support level to low/medium/high,
// defaulting to medium.
func (x *Household) Support() (string, bool) {
	return normalizeLevel(x.SupportLevel, "low", "medium", "high")
}

// PeerConsensusOrDefault returns the peer consensus in [0,1], substituting
// the documented default when no peer data is present.
func (x *Market) PeerConsensusOrDefault() (float64, bool) {
	if x.PeerConsensus <= 0 {
		return DefaultPeerConsensus, true
	}
	if x.PeerConsensus > 1 {
		return 1, false
	}
	return x.PeerConsensus, false
}

// MarketSignalOrDefault returns the hiring-heat signal in [0,1],
// substituting the documented default when no market data is present.
func (x *Market) MarketSignalOrDefault() (float64, bool) {
	if x.MarketSignal <= 0 {
		return DefaultMarketSignal, true
	}
	if x.MarketSignal > 1 {
		return 1, false
	}
	return x.MarketSignal, false
}

// normalizeLevel maps a free-form level string onto the three accepted
// values, returning the middle value and true when the input is missing or
// unrecognized.
func normalizeLevel(s, low, mid, high string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case low:
		return low, false
	case mid:
		return mid, false
	case high:
		return high, false
	default:
		return mid, true
	}
}
