package local

import "github.com/m-mizutani/goerr/v2"

// ErrCorrupt marks a memory document that could not be decoded. It is
// recovered locally by reinitializing to empty defaults and is never
// surfaced to callers.
var ErrCorrupt = goerr.New("memory document is corrupt")
