// Package agentduel provides a high-level façade over the match orchestrator
// and its collaborators (rules engine, renderer, transcript store & logging)
// for running a rate-limited duel between two model-backed players. Most
// applications interact with this package by:
//  1. Building two players (typically player.NewModelPlayer with a shared quota.Limiter)
//  2. Creating a Duel via New() (optionally overriding default services)
//  3. Calling Play() and inspecting the returned Summary
//
// The façade delegates the turn loop to match.Orchestrator while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a durable transcript
// store and a structured logger.
package agentduel

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/hupe1980/agentduel/board"
	"github.com/hupe1980/agentduel/core"
	"github.com/hupe1980/agentduel/logging"
	"github.com/hupe1980/agentduel/match"
	"github.com/hupe1980/agentduel/record"
	"github.com/hupe1980/agentduel/render"
)

// Options configures the Duel instance.
type Options struct {
	// Rules adjudicates moves and reports the outcome. Defaults to a fresh
	// chess engine at the starting position.
	Rules core.Rules

	// Renderer exports the position after every accepted move. Defaults to
	// SVG files under ./moves; use render.Discard to disable.
	Renderer core.Renderer

	// Transcripts persists the finished duel (defaults to an in-memory store).
	Transcripts core.TranscriptStore

	// MaxTurns is the hard ceiling on accepted moves.
	MaxTurns int

	// Clock supplies time and timers; tests inject a mock.
	Clock clock.Clock

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Duel is the high-level façade aggregating the orchestrator and its services.
type Duel struct {
	opts Options
	orch *match.Orchestrator
}

// New creates a new Duel between the given players with optional overrides.
// Any unset service is initialized with a local default.
func New(white, black core.Player, optFns ...func(o *Options)) *Duel {
	opts := Options{
		Rules:       board.NewEngine(),
		Renderer:    render.NewSVG("moves"),
		Transcripts: record.NewInMemoryStore(),
		MaxTurns:    100,
		Clock:       clock.New(),
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	orch := match.New(white, black, opts.Rules, func(o *match.Options) {
		o.MaxTurns = opts.MaxTurns
		o.Clock = opts.Clock
		o.Logger = opts.Logger
		o.Renderer = opts.Renderer
		o.Transcripts = opts.Transcripts
	})

	return &Duel{opts: opts, orch: orch}
}

// ID returns the duel identifier used for logs and the transcript.
func (d *Duel) ID() string { return d.orch.ID() }

// Transcripts exposes the configured transcript store so callers can retrieve
// the finished record by the summary's ID.
func (d *Duel) Transcripts() core.TranscriptStore { return d.opts.Transcripts }

// Play runs the duel to completion and returns the final summary. Cancelling
// ctx stops the duel at the next safe point.
func (d *Duel) Play(ctx context.Context) match.Summary {
	return d.orch.Run(ctx)
}
