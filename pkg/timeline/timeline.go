// Package timeline holds the ordered list of played moves and a cursor into
// it. The live rules state always equals the replay of moves[0..cursor] from
// the starting position.
package timeline

import (
	"fmt"
	"log"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
)

// Start is the cursor value of the initial position, before any move
const Start = -1

// Rules is the part of the rules engine the timeline drives. The timeline is
// its only writer.
type Rules interface {
	// Apply plays a legal move on the live position. An illegal move returns
	// an error and leaves the position unchanged.
	Apply(from, to chess.Square, promo chess.PieceType) (Move, error)
	// Undo takes back the most recent applied move
	Undo() error
	// History lists the moves applied so far
	History() []Move
}

type Timeline struct {
	rules  Rules
	moves  []Move
	cursor int
}

// New seeds a timeline from the moves already applied to rules. anns is the
// annotation list parsed from the same movetext; when its length disagrees
// with the move count only the common prefix is bound.
func New(rules Rules, anns []annotation.Annotation) *Timeline {
	moves := rules.History()
	bound, mismatch := annotation.Bind(len(moves), anns)
	if mismatch && len(anns) > 0 {
		log.Printf("annotation count %d does not match move count %d, binding the first %d",
			len(anns), len(moves), min(len(anns), len(moves)))
	}
	for i := range moves {
		moves[i].Annotation = bound[i]
	}
	return &Timeline{
		rules:  rules,
		moves:  moves,
		cursor: len(moves) - 1,
	}
}

func (t *Timeline) Cursor() int {
	return t.cursor
}

func (t *Timeline) Len() int {
	return len(t.moves)
}

// Moves returns a copy of the move sequence
func (t *Timeline) Moves() []Move {
	moves := make([]Move, len(t.moves))
	copy(moves, t.moves)
	return moves
}

// Move returns the move at index i
func (t *Timeline) Move(i int) (Move, bool) {
	if i < 0 || i >= len(t.moves) {
		return Move{}, false
	}
	return t.moves[i], true
}

// Current returns the move at the cursor, if any
func (t *Timeline) Current() (Move, bool) {
	return t.Move(t.cursor)
}

// SetCursor walks the live position to target, undoing when moving back and
// re-applying the stored moves when moving forward. Targets outside
// [-1, Len()-1] are ignored.
func (t *Timeline) SetCursor(target int) error {
	if target < Start || target >= len(t.moves) {
		return nil
	}
	for t.cursor > target {
		if err := t.rules.Undo(); err != nil {
			return fmt.Errorf("timeline: undo move %d: %w", t.cursor, err)
		}
		t.cursor--
	}
	for t.cursor < target {
		m := t.moves[t.cursor+1]
		if _, err := t.rules.Apply(m.From, m.To, m.Promo); err != nil {
			return fmt.Errorf("timeline: replay move %d (%s): %w", t.cursor+1, m.SAN, err)
		}
		t.cursor++
	}
	return nil
}

// AppendMove plays a new move at the cursor. Every move after the cursor is
// discarded and the new move, carrying no annotation, becomes the last one.
// If the rules reject the move the timeline is left as it was.
func (t *Timeline) AppendMove(from, to chess.Square, promo chess.PieceType) (Move, error) {
	m, err := t.rules.Apply(from, to, promo)
	if err != nil {
		return Move{}, err
	}
	m.Annotation = annotation.None
	t.moves = append(t.moves[:t.cursor+1:t.cursor+1], m)
	t.cursor = len(t.moves) - 1
	return m, nil
}

// Reset walks back to the initial position
func (t *Timeline) Reset() error {
	return t.SetCursor(Start)
}

func (t *Timeline) Next() error {
	return t.SetCursor(t.cursor + 1)
}

func (t *Timeline) Previous() error {
	return t.SetCursor(t.cursor - 1)
}

// End walks forward to the last recorded move
func (t *Timeline) End() error {
	return t.SetCursor(len(t.moves) - 1)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
