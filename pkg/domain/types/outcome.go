package types

import "fmt"

// Outcome reports how a recommendation turned out in hindsight.
// OutcomeNeutral resolves the case without moving agent weights.
type Outcome string

const (
	OutcomeUnset    Outcome = ""
	OutcomePositive Outcome = "positive"
	OutcomeNegative Outcome = "negative"
	OutcomeNeutral  Outcome = "neutral"
)

// AllOutcomes returns all valid resolved outcomes
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomePositive,
		OutcomeNegative,
		OutcomeNeutral,
	}
}

// IsValid checks if the outcome is a valid resolved outcome
func (x Outcome) IsValid() bool {
	switch x {
	case OutcomePositive, OutcomeNegative, OutcomeNeutral:
		return true
	default:
		return false
	}
}

// IsSet reports whether the outcome has been recorded
func (x Outcome) IsSet() bool {
	return x != OutcomeUnset
}

// String returns the string representation of the outcome
func (x Outcome) String() string {
	return string(x)
}

// ParseOutcome parses a string into a resolved Outcome
func ParseOutcome(s string) (Outcome, error) {
	outcome := Outcome(s)
	if !outcome.IsValid() {
		return "", fmt.Errorf("invalid outcome: %s", s)
	}
	return outcome, nil
}
