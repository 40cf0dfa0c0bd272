package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hupe1980/agentduel/core"
	"github.com/hupe1980/agentduel/logging"
)

// ReasonInterrupted is recorded when the session context is cancelled.
const ReasonInterrupted = "user interrupted"

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxTurns is the hard ceiling on accepted moves per duel.
	MaxTurns int
	// MaxProposalFailures terminates the duel after this many consecutive
	// turns without a usable move from the active player.
	MaxProposalFailures int
	// MaxInvalidMoves terminates the duel after this many consecutive
	// rejected moves. Looser than MaxProposalFailures: a present-but-wrong
	// move is more likely to self-correct on retry than a silent player.
	MaxInvalidMoves int
	// ProposalRetryDelay is the pause before retrying a turn after a
	// missing move.
	ProposalRetryDelay time.Duration
	// InvalidRetryDelay is the pause before retrying a turn after a
	// rejected move.
	InvalidRetryDelay time.Duration
	// TurnDelay is the pause between accepted moves.
	TurnDelay time.Duration
	// Clock supplies time and timers; tests inject a mock.
	Clock clock.Clock
	// Logger receives progress lines.
	Logger logging.Logger
	// Renderer exports positions after accepted moves (best effort).
	// Nil disables export.
	Renderer core.Renderer
	// Transcripts persists the finished duel. Nil disables persistence.
	Transcripts core.TranscriptStore
}

// Orchestrator runs a duel between two players to exactly one terminal
// outcome: a rules-engine verdict, a failure threshold, the turn ceiling or
// an interruption. It owns the session state for its lifetime; collaborators
// never mutate it.
type Orchestrator struct {
	id    string
	white core.Player
	black core.Player
	rules core.Rules
	state *State

	maxTurns            int
	maxProposalFailures int
	maxInvalidMoves     int
	proposalRetryDelay  time.Duration
	invalidRetryDelay   time.Duration
	turnDelay           time.Duration

	clock       clock.Clock
	logger      logging.Logger
	renderer    core.Renderer
	transcripts core.TranscriptStore
}

// New constructs an Orchestrator with optional overrides.
// Defaults mirror a cautious interactive session: 100 turns, thresholds of
// 3 missing and 5 invalid moves, short fixed delays between retries.
func New(white, black core.Player, rules core.Rules, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxTurns:            100,
		MaxProposalFailures: 3,
		MaxInvalidMoves:     5,
		ProposalRetryDelay:  3 * time.Second,
		InvalidRetryDelay:   2 * time.Second,
		TurnDelay:           3 * time.Second,
		Clock:               clock.New(),
		Logger:              logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{
		id:                  core.NewID(),
		white:               white,
		black:               black,
		rules:               rules,
		state:               NewState(),
		maxTurns:            opts.MaxTurns,
		maxProposalFailures: opts.MaxProposalFailures,
		maxInvalidMoves:     opts.MaxInvalidMoves,
		proposalRetryDelay:  opts.ProposalRetryDelay,
		invalidRetryDelay:   opts.InvalidRetryDelay,
		turnDelay:           opts.TurnDelay,
		clock:               opts.Clock,
		logger:              opts.Logger,
		renderer:            opts.Renderer,
		transcripts:         opts.Transcripts,
	}
}

// ID returns the duel identifier used for logs and the transcript.
func (o *Orchestrator) ID() string { return o.id }

// Summary is the final report of a duel.
type Summary struct {
	// ID is the duel identifier.
	ID string
	// Turns is the number of accepted moves.
	Turns int
	// Duration is the session wall-clock time.
	Duration time.Duration
	// Reason is the recorded termination reason.
	Reason string
	// Outcome is the rules engine's final verdict.
	Outcome core.Outcome
	// Moves is the accepted move log.
	Moves []core.Move
}

// Run drives the turn loop until a terminal state is reached and returns
// the final summary. It never returns an error: every failure is absorbed
// into a retry or a recorded termination reason. Cancelling ctx terminates
// the duel with ReasonInterrupted; cancellation is honored after every
// sleep and after every blocking collaborator call.
func (o *Orchestrator) Run(ctx context.Context) Summary {
	start := o.clock.Now()
	o.logger.Info("duel %s starting max_turns=%d", o.id, o.maxTurns)

	for !o.state.Terminated() && o.state.Turns() < o.maxTurns {
		if ctx.Err() != nil {
			o.state.Terminate(ReasonInterrupted)
			break
		}

		pos := o.rules.Position()
		active := o.playerFor(pos.Turn)

		mv, err := active.Propose(ctx, pos)
		if err != nil {
			if ctx.Err() != nil {
				o.state.Terminate(ReasonInterrupted)
				break
			}

			failures := o.state.RecordFailure()
			o.logger.Warn("%s failed to provide a move (errors: %d): %v", active.Name(), failures, err)

			if failures >= o.maxProposalFailures {
				o.state.Terminate(fmt.Sprintf("too many consecutive errors from %s", active.Name()))
				break
			}

			o.sleep(ctx, o.proposalRetryDelay)
			continue
		}

		if err := o.rules.Apply(mv); err != nil {
			failures := o.state.RecordFailure()
			o.logger.Warn("invalid move %q from %s (errors: %d): %v", mv, active.Name(), failures, err)

			if failures >= o.maxInvalidMoves {
				o.state.Terminate("too many invalid moves")
				break
			}

			o.sleep(ctx, o.invalidRetryDelay)
			continue
		}

		turn := o.state.RecordMove(mv)
		o.logger.Info("move %d: %s by %s", turn, mv, active.Name())

		o.export(turn)

		if outcome := o.rules.Outcome(); outcome.Terminal() {
			o.state.Terminate(outcome.String())
			break
		}

		o.sleep(ctx, o.turnDelay)
	}

	// Turn-ceiling path; a no-op when a reason is already recorded.
	o.state.Terminate(fmt.Sprintf("maximum turns (%d) reached", o.maxTurns))

	return o.finish(start)
}

func (o *Orchestrator) finish(start time.Time) Summary {
	end := o.clock.Now()

	summary := Summary{
		ID:       o.id,
		Turns:    o.state.Turns(),
		Duration: end.Sub(start),
		Reason:   o.state.Reason(),
		Outcome:  o.rules.Outcome(),
		Moves:    o.state.Moves(),
	}

	o.logger.Info("duel %s over: %s", o.id, summary.Reason)
	o.logger.Info("final statistics turns=%d duration=%s moves=%s", summary.Turns, summary.Duration, joinMoves(summary.Moves))

	if o.transcripts != nil {
		transcript := &core.Transcript{
			ID:         o.id,
			StartedAt:  start,
			FinishedAt: end,
			Moves:      summary.Moves,
			Turns:      summary.Turns,
			Reason:     summary.Reason,
			Outcome:    summary.Outcome,
		}
		if err := o.transcripts.Save(transcript); err != nil {
			o.logger.Error("failed to save transcript %s: %v", o.id, err)
		}
	}

	return summary
}

func (o *Orchestrator) playerFor(side core.Side) core.Player {
	if side == core.SideWhite {
		return o.white
	}
	return o.black
}

// export hands the post-move position to the renderer. Failures are logged
// and swallowed; visualization never affects session state.
func (o *Orchestrator) export(turn int) {
	if o.renderer == nil {
		return
	}
	if err := o.renderer.Export(o.rules.Position(), turn); err != nil {
		o.logger.Warn("could not export position after move %d: %v", turn, err)
	}
}

// sleep pauses for d on the injected clock, returning early on ctx
// cancellation (picked up by the loop-top interrupt check).
func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := o.clock.Timer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func joinMoves(moves []core.Move) string {
	parts := make([]string, len(moves))
	for i, mv := range moves {
		parts[i] = string(mv)
	}
	return strings.Join(parts, " ")
}
