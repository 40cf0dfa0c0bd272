package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentduel/core"
	"github.com/hupe1980/agentduel/internal/util"
	"github.com/hupe1980/agentduel/logging"
	"github.com/hupe1980/agentduel/model"
	"github.com/hupe1980/agentduel/quota"
)

// ErrEmptyCompletion signals that the model produced no usable move token.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

const instructionsTemplate = `You are an expert chess player playing as {{.Side}} pieces.
Your opponent plays as {{.Opponent}} pieces.

CRITICAL INSTRUCTIONS:
1. You must respond with ONLY a valid UCI move notation (e.g., e2e4, g1f3, e1g1, a7a8q)
2. Do NOT include any explanations, comments, or extra text
3. Do NOT use algebraic notation (like Nf3) - use UCI format only
4. Your response must be exactly one move like: e2e4
5. Make sure your move is legal in the current position

You are a strong chess player who thinks strategically about piece development, control of center, king safety, and tactical opportunities.`

const movePromptTemplate = `Current chess position (FEN): {{.FEN}}

Visual board:
{{.Diagram}}

It's {{.Side}}'s turn. Legal moves: {{.LegalMoves}}

Your move (UCI format only):`

// Options configures a ModelPlayer.
type Options struct {
	// Name is the player's display name. Defaults to "Player_<Side>".
	Name string
	// Timeout bounds the underlying model call. Exceeding it is treated
	// identically to a transport error.
	Timeout time.Duration
	// MaxListedMoves caps how many legal moves are spelled out in the
	// prompt; positions can have dozens and the list is only a nudge.
	MaxListedMoves int
	// Logger receives progress lines.
	Logger logging.Logger
}

// ModelPlayer proposes moves for one side by prompting a model. It acquires
// from the shared quota limiter before every outbound call.
type ModelPlayer struct {
	side           core.Side
	name           string
	model          model.Model
	limiter        *quota.Limiter
	timeout        time.Duration
	maxListedMoves int
	logger         logging.Logger
}

// NewModelPlayer constructs a player for the given side. The limiter is
// shared with the opposing player so the process-wide quota holds; a nil
// limiter disables throttling (offline tests and mock duels).
func NewModelPlayer(side core.Side, m model.Model, limiter *quota.Limiter, optFns ...func(o *Options)) *ModelPlayer {
	opts := Options{
		Name:           fmt.Sprintf("Player_%s", side.Title()),
		Timeout:        30 * time.Second,
		MaxListedMoves: 15,
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelPlayer{
		side:           side,
		name:           opts.Name,
		model:          m,
		limiter:        limiter,
		timeout:        opts.Timeout,
		maxListedMoves: opts.MaxListedMoves,
		logger:         opts.Logger,
	}
}

// Name returns the player's display name.
func (p *ModelPlayer) Name() string { return p.name }

// Side returns the side this player proposes moves for.
func (p *ModelPlayer) Side() core.Side { return p.side }

// Propose implements core.Player. It blocks on the quota limiter, prompts
// the model with a bounded timeout and parses the first token of the
// completion. Transport errors, timeouts and empty completions all surface
// as a non-nil error; a returned move is always non-empty but still
// unvalidated.
func (p *ModelPlayer) Propose(ctx context.Context, pos core.Position) (core.Move, error) {
	if p.limiter != nil {
		if err := p.limiter.Acquire(ctx); err != nil {
			return "", fmt.Errorf("quota wait interrupted: %w", err)
		}
	}

	instructions, err := p.instructions()
	if err != nil {
		return "", fmt.Errorf("failed to render instructions: %w", err)
	}

	prompt, err := p.movePrompt(pos)
	if err != nil {
		return "", fmt.Errorf("failed to render move prompt: %w", err)
	}

	p.logger.Info("%s is thinking...", p.name)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.model.Complete(callCtx, model.Request{Instructions: instructions, Prompt: prompt})
	logging.LogModelCall(p.logger, p.model.Info().Name, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}

	token := firstToken(resp.Text)
	if token == "" {
		return "", ErrEmptyCompletion
	}

	p.logger.Info("%s suggests: %s", p.name, token)

	return core.Move(token), nil
}

func (p *ModelPlayer) instructions() (string, error) {
	return util.RenderTemplate(instructionsTemplate, map[string]any{
		"Side":     p.side.String(),
		"Opponent": p.side.Opponent().String(),
	})
}

func (p *ModelPlayer) movePrompt(pos core.Position) (string, error) {
	listed := pos.LegalMoves
	if len(listed) > p.maxListedMoves {
		listed = listed[:p.maxListedMoves]
	}

	moves := make([]string, len(listed))
	for i, mv := range listed {
		moves[i] = string(mv)
	}

	return util.RenderTemplate(movePromptTemplate, map[string]any{
		"FEN":        pos.FEN,
		"Diagram":    pos.Diagram,
		"Side":       pos.Turn.String(),
		"LegalMoves": strings.Join(moves, ", "),
	})
}

// firstToken extracts the first whitespace-separated token of a completion,
// lowercased. Models occasionally wrap the move in commentary despite the
// instructions; the first token is the move by construction of the prompt.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
