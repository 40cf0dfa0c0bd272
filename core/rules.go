package core

// Rules is the rules-engine collaborator: it owns the authoritative game
// state, decides move legality and reports terminal outcomes. The
// orchestrator treats it as opaque beyond this contract.
type Rules interface {
	// Position returns a snapshot of the current state.
	Position() Position
	// Apply validates the move against the current state and applies it.
	// A non-nil error (malformed token or illegal move) leaves the state
	// unchanged.
	Apply(mv Move) error
	// Outcome reports the terminal status of the current state. It is a
	// side-effect-free query.
	Outcome() Outcome
}
