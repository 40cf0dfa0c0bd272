package core

import "github.com/google/uuid"

// NewID generates a new unique identifier for duels and transcripts.
//
// Uses UUID v4 for simplicity and universal uniqueness. IDs are not
// ordered; stores that need ordering should sort by StartedAt.
func NewID() string { return uuid.NewString() }
