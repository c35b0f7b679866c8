package types

// AgentID identifies a signal agent. Agent IDs are stable across releases
// because persisted weights and case records reference them.
type AgentID string

const (
	AgentFinanceRunway       AgentID = "finance_runway"
	AgentMarketReadiness     AgentID = "market_readiness"
	AgentHouseholdRisk       AgentID = "household_risk"
	AgentPositioningStrength AgentID = "positioning_strength"
	AgentPeerSentiment       AgentID = "peer_sentiment"
	AgentJobMarketHeat       AgentID = "job_market_heat"
	AgentNewsOutlook         AgentID = "news_outlook"
	AgentFinalSynthesis      AgentID = "final_synthesis"
)

// AllAgentIDs returns the IDs of all built-in agents
func AllAgentIDs() []AgentID {
	return []AgentID{
		AgentFinanceRunway,
		AgentMarketReadiness,
		AgentHouseholdRisk,
		AgentPositioningStrength,
		AgentPeerSentiment,
		AgentJobMarketHeat,
		AgentNewsOutlook,
		AgentFinalSynthesis,
	}
}

// IsValid checks if the agent ID is a built-in agent
func (x AgentID) IsValid() bool {
	for _, id := range AllAgentIDs() {
		if x == id {
			return true
		}
	}
	return false
}

// String returns the string representation of the agent ID
func (x AgentID) String() string {
	return string(x)
}
