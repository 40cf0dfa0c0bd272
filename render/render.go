// Package render implements the renderer collaborator: best-effort position
// visualization after each accepted move. Export failures are reported to
// the orchestrator, which logs and swallows them.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/agentduel/core"
	"github.com/notnil/chess"
	"github.com/notnil/chess/image"
)

// SVG writes one SVG board diagram per accepted move into a directory,
// named move_<turn>.svg. The directory is created on first export.
type SVG struct {
	dir string
}

// NewSVG constructs an SVG renderer exporting into dir.
func NewSVG(dir string) *SVG {
	return &SVG{dir: dir}
}

// Export implements core.Renderer.
func (r *SVG) Export(pos core.Position, turn int) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	fen, err := chess.FEN(pos.FEN)
	if err != nil {
		return fmt.Errorf("invalid position fen: %w", err)
	}
	game := chess.NewGame(fen)

	path := filepath.Join(r.dir, fmt.Sprintf("move_%d.svg", turn))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := image.SVG(f, game.Position().Board()); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	return nil
}

// Discard ignores every export request. Useful when visualization is
// disabled.
type Discard struct{}

// Export implements core.Renderer.
func (Discard) Export(core.Position, int) error { return nil }
