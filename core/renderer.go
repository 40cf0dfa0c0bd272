package core

// Renderer exports a visualization of a position after an accepted move.
// Export is best effort: the orchestrator logs a returned error and
// continues, so implementations need no internal retry logic.
type Renderer interface {
	Export(pos Position, turn int) error
}
