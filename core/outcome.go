package core

import "fmt"

// OutcomeKind tags the variants of a terminal-state query.
type OutcomeKind int

const (
	// OutcomeInProgress means the game continues.
	OutcomeInProgress OutcomeKind = iota
	// OutcomeDecisive means one side has won.
	OutcomeDecisive
	// OutcomeDraw means the game ended without a winner.
	OutcomeDraw
)

// Outcome is the rules engine's answer to "is this position terminal?".
// It is opaque data to the orchestrator beyond its kind: a Decisive or
// Draw outcome ends the session, InProgress continues it.
type Outcome struct {
	Kind OutcomeKind
	// Winner is set for Decisive outcomes only.
	Winner Side
	// Reason names the rule that ended the game ("checkmate",
	// "stalemate", "insufficient material", ...). Empty while in progress.
	Reason string
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool { return o.Kind != OutcomeInProgress }

// String renders a human-readable description of the outcome.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeDecisive:
		return fmt.Sprintf("%s! %s wins!", o.Reason, o.Winner.Title())
	case OutcomeDraw:
		return fmt.Sprintf("draw: %s", o.Reason)
	default:
		return "in progress"
	}
}
