package types

import "fmt"

// Stance is the direction an agent leans with its signal, independent of
// the aggregate recommendation. It is what feedback scoring compares
// against the actual outcome.
type Stance string

const (
	StanceFavorQuit Stance = "favor_quit"
	StanceFavorStay Stance = "favor_stay"
	StanceNeutral   Stance = "neutral"
)

// AllStances returns all valid stances
func AllStances() []Stance {
	return []Stance{
		StanceFavorQuit,
		StanceFavorStay,
		StanceNeutral,
	}
}

// IsValid checks if the stance is valid
func (x Stance) IsValid() bool {
	switch x {
	case StanceFavorQuit, StanceFavorStay, StanceNeutral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stance
func (x Stance) String() string {
	return string(x)
}

// ParseStance parses a string into a Stance
func ParseStance(s string) (Stance, error) {
	stance := Stance(s)
	if !stance.IsValid() {
		return "", fmt.Errorf("invalid stance: %s", s)
	}
	return stance, nil
}
