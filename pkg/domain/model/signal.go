package model

import "github.com/quitswarm/quitswarm/pkg/domain/types"

// AgentSignal is one agent's assessment of a profile. Signals are produced
// fresh on every evaluation and are only persisted embedded in a CaseRecord.
type AgentSignal struct {
	AgentID   types.AgentID `json:"agent_id"`
	Score     float64       `json:"score"` // 0..100
	Rationale []string      `json:"rationale"`
	RedFlags  []string      `json:"red_flags,omitempty"`
	Stance    types.Stance  `json:"stance"`
}
