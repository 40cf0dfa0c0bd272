package match

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hupe1980/agentduel/core"
	"github.com/hupe1980/agentduel/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// proposal is one scripted answer from a test player.
type proposal struct {
	mv  core.Move
	err error
}

// scriptPlayer replays a fixed proposal script; an exhausted script behaves
// like a player that never recovers.
type scriptPlayer struct {
	name   string
	side   core.Side
	script []proposal
	calls  int
}

func (p *scriptPlayer) Name() string    { return p.name }
func (p *scriptPlayer) Side() core.Side { return p.side }

func (p *scriptPlayer) Propose(_ context.Context, _ core.Position) (core.Move, error) {
	p.calls++
	if len(p.script) == 0 {
		return "", errors.New("no move produced")
	}
	pr := p.script[0]
	p.script = p.script[1:]
	return pr.mv, pr.err
}

func moves(tokens ...core.Move) []proposal {
	out := make([]proposal, len(tokens))
	for i, tok := range tokens {
		out[i] = proposal{mv: tok}
	}
	return out
}

func failures(n int) []proposal {
	out := make([]proposal, n)
	for i := range out {
		out[i] = proposal{err: errors.New("no move produced")}
	}
	return out
}

// fakeRules accepts or rejects every move and reports a terminal outcome
// after a configured number of accepted moves.
type fakeRules struct {
	turn          core.Side
	applied       []core.Move
	rejectAll     bool
	terminalAfter int
	terminal      core.Outcome
}

func newFakeRules() *fakeRules { return &fakeRules{turn: core.SideWhite} }

func (r *fakeRules) Position() core.Position {
	return core.Position{FEN: "fake", Turn: r.turn}
}

func (r *fakeRules) Apply(mv core.Move) error {
	if r.rejectAll {
		return errors.New("illegal move")
	}
	r.applied = append(r.applied, mv)
	r.turn = r.turn.Opponent()
	return nil
}

func (r *fakeRules) Outcome() core.Outcome {
	if r.terminalAfter > 0 && len(r.applied) >= r.terminalAfter {
		return r.terminal
	}
	return core.Outcome{Kind: core.OutcomeInProgress}
}

// captureRenderer records export calls and optionally fails every one.
type captureRenderer struct {
	turns []int
	fail  bool
}

func (c *captureRenderer) Export(_ core.Position, turn int) error {
	c.turns = append(c.turns, turn)
	if c.fail {
		return errors.New("disk full")
	}
	return nil
}

func zeroDelays(o *Options) {
	o.ProposalRetryDelay = 0
	o.InvalidRetryDelay = 0
	o.TurnDelay = 0
}

func longScript(prefix string, n int) []proposal {
	out := make([]proposal, n)
	for i := range out {
		out[i] = proposal{mv: core.Move(fmt.Sprintf("%s%d", prefix, i))}
	}
	return out
}

func TestRunProposalFailureThreshold(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	o := New(white, black, newFakeRules(), zeroDelays)
	summary := o.Run(context.Background())

	assert.Equal(t, 0, summary.Turns)
	assert.Equal(t, 3, white.calls, "exactly 3 proposal attempts before terminating")
	assert.Equal(t, 0, black.calls)
	assert.Equal(t, "too many consecutive errors from Player_White", summary.Reason)
}

func TestRunInvalidMoveThreshold(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: moves("e2e5", "e2e5", "e2e5", "e2e5", "e2e5")}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	rules := newFakeRules()
	rules.rejectAll = true

	o := New(white, black, rules, zeroDelays)
	summary := o.Run(context.Background())

	assert.Equal(t, 0, summary.Turns)
	assert.Equal(t, 5, white.calls, "exactly 5 invalid moves before terminating")
	assert.Equal(t, "too many invalid moves", summary.Reason)
	assert.Empty(t, summary.Moves)
}

func TestRunFailureCounterResetsOnAcceptedMove(t *testing.T) {
	// White fails twice, then produces a move; the reset counter must let
	// black accumulate a full run of 3 failures before termination.
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: append(failures(2), proposal{mv: "e2e4"})}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	o := New(white, black, newFakeRules(), zeroDelays)
	summary := o.Run(context.Background())

	assert.Equal(t, 1, summary.Turns)
	assert.Equal(t, 3, white.calls)
	assert.Equal(t, 3, black.calls)
	assert.Equal(t, "too many consecutive errors from Player_Black", summary.Reason)
	assert.Equal(t, []core.Move{"e2e4"}, summary.Moves)
}

func TestRunDecisiveOutcomeAfterFirstMove(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: moves("e2e4")}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	rules := newFakeRules()
	rules.terminalAfter = 1
	rules.terminal = core.Outcome{Kind: core.OutcomeDecisive, Winner: core.SideWhite, Reason: "checkmate"}

	renderer := &captureRenderer{}
	store := record.NewInMemoryStore()

	o := New(white, black, rules, zeroDelays, func(opt *Options) {
		opt.Renderer = renderer
		opt.Transcripts = store
	})
	summary := o.Run(context.Background())

	assert.Equal(t, 1, summary.Turns)
	assert.Equal(t, "checkmate! White wins!", summary.Reason)
	assert.Equal(t, core.OutcomeDecisive, summary.Outcome.Kind)
	assert.Equal(t, core.SideWhite, summary.Outcome.Winner)
	assert.Equal(t, []int{1}, renderer.turns)

	transcript, err := store.Get(summary.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.Reason, transcript.Reason)
	assert.Equal(t, summary.Moves, transcript.Moves)
}

func TestRunTurnCeiling(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: longScript("w", 10)}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack, script: longScript("b", 10)}

	o := New(white, black, newFakeRules(), zeroDelays, func(opt *Options) { opt.MaxTurns = 4 })
	summary := o.Run(context.Background())

	assert.Equal(t, 4, summary.Turns)
	assert.Len(t, summary.Moves, 4)
	assert.Equal(t, "maximum turns (4) reached", summary.Reason)
	assert.Equal(t, 2, white.calls, "sides alternate starting with white")
	assert.Equal(t, 2, black.calls)
}

func TestRunRendererFailureDoesNotAffectSession(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: longScript("w", 5)}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack, script: longScript("b", 5)}

	renderer := &captureRenderer{fail: true}

	o := New(white, black, newFakeRules(), zeroDelays, func(opt *Options) {
		opt.MaxTurns = 2
		opt.Renderer = renderer
	})
	summary := o.Run(context.Background())

	assert.Equal(t, 2, summary.Turns)
	assert.Equal(t, []int{1, 2}, renderer.turns)
	assert.Equal(t, "maximum turns (2) reached", summary.Reason)
}

func TestRunInterruptedBeforeStart(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: longScript("w", 5)}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack, script: longScript("b", 5)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(white, black, newFakeRules(), zeroDelays)
	summary := o.Run(ctx)

	assert.Equal(t, ReasonInterrupted, summary.Reason)
	assert.Equal(t, 0, summary.Turns)
	assert.Equal(t, 0, white.calls)
}

func TestRunInterruptedDuringTurnDelay(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC))

	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: longScript("w", 5)}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack, script: longScript("b", 5)}

	ctx, cancel := context.WithCancel(context.Background())

	o := New(white, black, newFakeRules(), func(opt *Options) { opt.Clock = mock })

	done := make(chan Summary, 1)
	go func() { done <- o.Run(ctx) }()

	// Let the first accepted move land and the loop park in the turn delay.
	require.Eventually(t, func() bool { return o.state.Turns() == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case summary := <-done:
		assert.Equal(t, ReasonInterrupted, summary.Reason)
		assert.Equal(t, 1, summary.Turns)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunTerminationIsIdempotent(t *testing.T) {
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: moves("e2e4")}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	rules := newFakeRules()
	rules.terminalAfter = 1
	rules.terminal = core.Outcome{Kind: core.OutcomeDraw, Reason: "stalemate"}

	o := New(white, black, rules, zeroDelays)
	first := o.Run(context.Background())
	assert.Equal(t, "draw: stalemate", first.Reason)

	assert.False(t, o.state.Terminate("late interrupt"))

	// A second Run performs no further actions and reports the same reason.
	calls := white.calls
	second := o.Run(context.Background())
	assert.Equal(t, first.Reason, second.Reason)
	assert.Equal(t, first.Turns, second.Turns)
	assert.Equal(t, calls, white.calls)
}

func TestRunRetryDelaysUseInjectedClock(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC))

	// Two proposal failures (3s pause each), then an accepted move that
	// immediately ends the game: 6s of scheduled waiting in total.
	white := &scriptPlayer{name: "Player_White", side: core.SideWhite, script: append(failures(2), proposal{mv: "e2e4"})}
	black := &scriptPlayer{name: "Player_Black", side: core.SideBlack}

	rules := newFakeRules()
	rules.terminalAfter = 1
	rules.terminal = core.Outcome{Kind: core.OutcomeDecisive, Winner: core.SideWhite, Reason: "checkmate"}

	o := New(white, black, rules, func(opt *Options) { opt.Clock = mock })

	done := make(chan Summary, 1)
	go func() { done <- o.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case summary := <-done:
			assert.Equal(t, 1, summary.Turns)
			assert.GreaterOrEqual(t, summary.Duration, 6*time.Second)
			assert.Less(t, summary.Duration, 10*time.Second)
			return
		case <-deadline:
			t.Fatal("Run did not complete")
		default:
			mock.Add(500 * time.Millisecond)
			time.Sleep(2 * time.Millisecond)
		}
	}
}
