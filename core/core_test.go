package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideBlack, SideWhite.Opponent())
	assert.Equal(t, SideWhite, SideBlack.Opponent())
}

func TestSideTitle(t *testing.T) {
	assert.Equal(t, "White", SideWhite.Title())
	assert.Equal(t, "Black", SideBlack.Title())
	assert.Equal(t, "", Side("").Title())
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{
			name:    "decisive",
			outcome: Outcome{Kind: OutcomeDecisive, Winner: SideWhite, Reason: "checkmate"},
			want:    "checkmate! White wins!",
		},
		{
			name:    "draw",
			outcome: Outcome{Kind: OutcomeDraw, Reason: "stalemate"},
			want:    "draw: stalemate",
		},
		{
			name:    "in progress",
			outcome: Outcome{Kind: OutcomeInProgress},
			want:    "in progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.String())
		})
	}
}

func TestOutcomeTerminal(t *testing.T) {
	assert.False(t, Outcome{Kind: OutcomeInProgress}.Terminal())
	assert.True(t, Outcome{Kind: OutcomeDecisive}.Terminal())
	assert.True(t, Outcome{Kind: OutcomeDraw}.Terminal())
}

func TestTranscriptClone(t *testing.T) {
	orig := &Transcript{
		ID:    NewID(),
		Moves: []Move{"e2e4", "e7e5"},
		Turns: 2,
	}

	cp := orig.Clone()
	cp.Moves[0] = "d2d4"

	assert.Equal(t, Move("e2e4"), orig.Moves[0])
	assert.Equal(t, orig.ID, cp.ID)
}

func TestNewIDUniqueness(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
