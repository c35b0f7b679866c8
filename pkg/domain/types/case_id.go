package types

import "github.com/google/uuid"

// CaseID is a UUID-based identifier for a decision case
type CaseID string

// NewCaseID generates a new UUID v4 CaseID
func NewCaseID() CaseID {
	return CaseID(uuid.New().String())
}

// String returns the string representation of the case ID
func (x CaseID) String() string {
	return string(x)
}
