// Package match drives a duel between two players to one terminal outcome.
//
// The Orchestrator runs the turn loop: it asks the active player for a move,
// validates and applies it through the rules engine, tracks consecutive
// failures against two thresholds (missing moves and invalid moves), exports
// positions best-effort, and evaluates terminal conditions after every
// accepted move. Termination is write-once: the first recorded reason wins
// and the loop performs no further actions afterwards. No error escapes
// Run; every failure path is absorbed into a retry or a terminal state.
package match
