package types

import "fmt"

// Recommendation is the aggregate verdict of the swarm
type Recommendation string

const (
	RecommendationQuit Recommendation = "quit"
	RecommendationWait Recommendation = "wait"
	RecommendationStay Recommendation = "stay"
)

// AllRecommendations returns all valid recommendations
func AllRecommendations() []Recommendation {
	return []Recommendation{
		RecommendationQuit,
		RecommendationWait,
		RecommendationStay,
	}
}

// IsValid checks if the recommendation is valid
func (x Recommendation) IsValid() bool {
	switch x {
	case RecommendationQuit, RecommendationWait, RecommendationStay:
		return true
	default:
		return false
	}
}

// String returns the string representation of the recommendation
func (x Recommendation) String() string {
	return string(x)
}

// ParseRecommendation parses a string into a Recommendation
func ParseRecommendation(s string) (Recommendation, error) {
	rec := Recommendation(s)
	if !rec.IsValid() {
		return "", fmt.Errorf("invalid recommendation: %s", s)
	}
	return rec, nil
}

// QuitWindow is the coarse time horizon for acting on a recommendation
type QuitWindow string

const (
	QuitWindowNow     QuitWindow = "now"
	QuitWindowMidTerm QuitWindow = "3-6 months"
	QuitWindowNotYet  QuitWindow = "not yet"
)

// IsValid checks if the quit window is valid
func (x QuitWindow) IsValid() bool {
	switch x {
	case QuitWindowNow, QuitWindowMidTerm, QuitWindowNotYet:
		return true
	default:
		return false
	}
}

// String returns the string representation of the quit window
func (x QuitWindow) String() string {
	return string(x)
}
