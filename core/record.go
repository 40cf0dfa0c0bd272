package core

import "time"

// Transcript is the durable record of one finished duel: the accepted move
// sequence plus the orchestrator's final bookkeeping.
type Transcript struct {
	// ID uniquely identifies the duel (see NewID).
	ID string
	// StartedAt and FinishedAt bound the session wall-clock duration.
	StartedAt  time.Time
	FinishedAt time.Time
	// Moves is the ordered sequence of accepted moves.
	Moves []Move
	// Turns is the number of accepted moves (len(Moves), kept explicit
	// for stores that drop the move list).
	Turns int
	// Reason is the recorded termination reason.
	Reason string
	// Outcome is the rules engine's final verdict.
	Outcome Outcome
}

// Clone returns a deep copy so stores can hand out snapshots without
// exposing internal state to mutation.
func (t *Transcript) Clone() *Transcript {
	cp := *t
	cp.Moves = make([]Move, len(t.Moves))
	copy(cp.Moves, t.Moves)
	return &cp
}

// TranscriptStore persists duel transcripts. Implementations must be safe
// for concurrent use.
type TranscriptStore interface {
	// Save stores a snapshot of the transcript.
	Save(t *Transcript) error
	// Get returns the transcript with the given ID.
	Get(id string) (*Transcript, error)
	// List returns all stored transcripts.
	List() ([]*Transcript, error)
}
