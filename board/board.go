// Package board implements the rules-engine collaborator on top of
// github.com/notnil/chess with UCI move notation. It owns the authoritative
// game state; the orchestrator only sees position snapshots and outcomes.
package board

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentduel/core"
	"github.com/notnil/chess"
)

// Engine wraps a chess game behind the core.Rules interface.
type Engine struct {
	game *chess.Game
}

// NewEngine constructs an engine at the standard starting position.
func NewEngine() *Engine {
	return &Engine{game: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// Position implements core.Rules.
func (e *Engine) Position() core.Position {
	pos := e.game.Position()

	notation := chess.UCINotation{}
	valid := e.game.ValidMoves()
	moves := make([]core.Move, len(valid))
	for i, mv := range valid {
		moves[i] = core.Move(notation.Encode(pos, mv))
	}

	return core.Position{
		FEN:        pos.String(),
		Diagram:    pos.Board().Draw(),
		Turn:       sideOf(pos.Turn()),
		LegalMoves: moves,
	}
}

// Apply implements core.Rules. Tokens are normalized (trimmed, lowercased)
// before parsing; a malformed or illegal move returns an error and leaves
// the game state unchanged.
func (e *Engine) Apply(mv core.Move) error {
	token := strings.ToLower(strings.TrimSpace(string(mv)))
	if token == "" {
		return fmt.Errorf("empty move token")
	}

	if err := e.game.MoveStr(token); err != nil {
		return fmt.Errorf("illegal or malformed move %q: %w", token, err)
	}

	return nil
}

// Outcome implements core.Rules, mapping the game result onto the tagged
// outcome variant. Draw detection (stalemate, insufficient material,
// repetition, seventy-five move rule) is handled by the underlying library.
func (e *Engine) Outcome() core.Outcome {
	switch e.game.Outcome() {
	case chess.WhiteWon:
		return core.Outcome{Kind: core.OutcomeDecisive, Winner: core.SideWhite, Reason: methodReason(e.game.Method())}
	case chess.BlackWon:
		return core.Outcome{Kind: core.OutcomeDecisive, Winner: core.SideBlack, Reason: methodReason(e.game.Method())}
	case chess.Draw:
		return core.Outcome{Kind: core.OutcomeDraw, Reason: methodReason(e.game.Method())}
	default:
		return core.Outcome{Kind: core.OutcomeInProgress}
	}
}

func sideOf(c chess.Color) core.Side {
	if c == chess.White {
		return core.SideWhite
	}
	return core.SideBlack
}

func methodReason(m chess.Method) string {
	switch m {
	case chess.Checkmate:
		return "checkmate"
	case chess.Stalemate:
		return "stalemate"
	case chess.InsufficientMaterial:
		return "insufficient material"
	case chess.ThreefoldRepetition:
		return "threefold repetition"
	case chess.FivefoldRepetition:
		return "fivefold repetition"
	case chess.FiftyMoveRule:
		return "fifty move rule"
	case chess.SeventyFiveMoveRule:
		return "seventy-five move rule"
	case chess.Resignation:
		return "resignation"
	default:
		return "game over"
	}
}
