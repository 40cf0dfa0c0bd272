// Package core defines the shared vocabulary of agentduel: sides, moves,
// position snapshots, terminal outcomes and the collaborator interfaces
// (Player, Rules, Renderer, TranscriptStore) that the match orchestrator
// wires together. Keeping these in a leaf package lets providers, rules
// engines and the orchestrator depend on the same contracts without
// import cycles.
package core
