package match

import (
	"sync"

	"github.com/hupe1980/agentduel/core"
)

// State holds the session bookkeeping owned by the Orchestrator: the turn
// counter, the consecutive failure counter, the accepted move log and the
// write-once termination flag. All methods are safe for concurrent use so
// an interrupt handler racing the main loop cannot corrupt the counters or
// overwrite a recorded termination reason.
type State struct {
	mu                  sync.Mutex
	turns               int
	consecutiveFailures int
	terminated          bool
	reason              string
	moves               []core.Move
}

// NewState constructs an empty session state.
func NewState() *State { return &State{} }

// RecordFailure increments the consecutive failure counter and returns the
// new count. Failed attempts never advance the turn counter.
func (s *State) RecordFailure() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.consecutiveFailures++

	return s.consecutiveFailures
}

// RecordMove appends an accepted move, resets the consecutive failure
// counter and advances the turn counter, returning the new turn number.
func (s *State) RecordMove(mv core.Move) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.consecutiveFailures = 0
	s.moves = append(s.moves, mv)
	s.turns++

	return s.turns
}

// Terminate transitions the session to the terminated state with the given
// reason. Only the first caller wins; later calls return false and leave
// the recorded reason unchanged.
func (s *State) Terminate(reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return false
	}

	s.terminated = true
	s.reason = reason

	return true
}

// Terminated reports whether the session has reached a terminal state.
func (s *State) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.terminated
}

// Reason returns the recorded termination reason (empty while running).
func (s *State) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reason
}

// Turns returns the number of accepted moves.
func (s *State) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.turns
}

// Failures returns the current consecutive failure count.
func (s *State) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.consecutiveFailures
}

// Moves returns a copy of the accepted move log.
func (s *State) Moves() []core.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Move, len(s.moves))
	copy(out, s.moves)

	return out
}
