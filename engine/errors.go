// Package engine implements the draw and results logic for a rowing regatta:
// eligibility checks, club-scoped crew numbering, race partitioning with lane
// assignment, lane swaps and results scoring. Every operation is a pure
// function over snapshots handed in by the caller; the engine performs no
// I/O and owns no storage.
package engine

import "errors"

// Engine error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrInvalidFormat      = errors.New("invalid time format")
	ErrInvalidLaneCount   = errors.New("lanes per race out of range")
	ErrNoEntries          = errors.New("no entries to draw")
	ErrAmbiguousBoatClass = errors.New("entries span multiple boat classes")
	ErrGenderMismatch     = errors.New("athlete gender does not match category")
	ErrTooYoung           = errors.New("athlete below category minimum age")
	ErrTooOld             = errors.New("athlete above category maximum age")
	ErrLaneOutOfRange     = errors.New("lane number out of range")
	ErrRaceNotFound       = errors.New("race not found")
	ErrCrewSizeMismatch   = errors.New("crew size does not match boat class")
)
