// Package player implements the model-backed participant of a duel. A
// ModelPlayer is a single type parameterized by side: it throttles itself
// through the shared quota limiter, prompts its model with the current
// position and parses the completion into a raw move token. Every failure
// mode collapses into one error return so the orchestrator has a single
// signal to drive its retry bookkeeping.
package player
