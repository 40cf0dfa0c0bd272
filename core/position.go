package core

// Position is an immutable snapshot of the board handed to players and
// renderers. It carries everything a player needs to propose a move
// without exposing the rules engine's internal state.
type Position struct {
	// FEN is the Forsyth-Edwards encoding of the position.
	FEN string
	// Diagram is an ASCII rendering of the board suitable for prompts
	// and progress output.
	Diagram string
	// Turn is the side to move.
	Turn Side
	// LegalMoves lists every legal move in the position, in the rules
	// engine's ordering.
	LegalMoves []Move
}
