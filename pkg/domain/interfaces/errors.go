package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by every Repository implementation. Callers match
// them with errors.Is to tell a missing record or a duplicate resolution
// apart from a storage failure.
var (
	ErrNotFound     = goerr.New("record not found")
	ErrCaseResolved = goerr.New("case outcome already recorded")
)
