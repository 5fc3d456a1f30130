package timeline

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
)

// Move is one ply. It is a value type and compares structurally.
type Move struct {
	From       chess.Square
	To         chess.Square
	SAN        string
	Promo      chess.PieceType
	Annotation annotation.Annotation
}

// Mates reports whether the notation already carries the checkmate glyph
func (m Move) Mates() bool {
	return strings.HasSuffix(m.SAN, "#")
}

// Label is the notation followed by its inline marker. A mating move is not
// marked twice.
func (m Move) Label() string {
	if m.Annotation == annotation.None || (m.Annotation == annotation.Checkmate && m.Mates()) {
		return m.SAN
	}
	return m.SAN + m.Annotation.Glyph()
}

// String returns the move in UCI form, e.g. "e7e8q"
func (m Move) String() string {
	if m.Promo != chess.NoPieceType {
		return fmt.Sprintf("%s%s%s", m.From, m.To, m.Promo)
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}
