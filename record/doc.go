// Package record persists duel transcripts. The in-memory implementation
// suits tests and single-process runs; durable stores can implement
// core.TranscriptStore against the same contract.
package record
