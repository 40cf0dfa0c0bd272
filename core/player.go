package core

import "context"

// Player proposes moves for one side of the duel.
//
// Implementations may perform network I/O and must apply their own bounded
// timeout to any underlying call. Every failure mode (transport error,
// timeout, unparseable response) is reported as a non-nil error so the
// orchestrator has a single failure signal for its retry bookkeeping; an
// error never carries a usable move. Implementations backed by a quota-bound
// service must acquire from their rate limiter before the outbound call.
type Player interface {
	// Name returns the player's display name (used in logs and
	// termination reasons).
	Name() string
	// Side returns the side this player proposes moves for.
	Side() Side
	// Propose returns the player's move for the given position.
	Propose(ctx context.Context, pos Position) (Move, error)
}
