package core

// Side identifies one of the two participants in a duel. Players are a
// single type parameterized by Side rather than per-color implementations.
type Side string

const (
	// SideWhite moves first.
	SideWhite Side = "white"
	// SideBlack moves second.
	SideBlack Side = "black"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// String returns the lowercase side name.
func (s Side) String() string { return string(s) }

// Title returns the side name with an uppercase first letter for
// human-readable output ("White", "Black").
func (s Side) Title() string {
	if len(s) == 0 {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// Move is a raw, unvalidated action token proposed by a player (UCI
// notation for the chess rules engine, e.g. "e2e4" or "a7a8q"). Validity
// is decided exclusively by the Rules collaborator.
type Move string

// String returns the raw token.
func (m Move) String() string { return string(m) }
