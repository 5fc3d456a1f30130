// Package engine adapts github.com/notnil/chess to the rules the timeline and
// board sync need: incremental apply and undo, legal destinations and check.
package engine

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/timeline"
)

// RulesError is a rules violation: a malformed position, unreadable movetext
// or an illegal move.
type RulesError struct {
	Msg string
	Err error
}

func (e *RulesError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *RulesError) Unwrap() error {
	return e.Err
}

// Engine keeps one position per applied ply so undo never replays
type Engine struct {
	game      *chess.Game
	positions []*chess.Position
	moves     []*chess.Move
}

// New returns an engine at the standard starting position
func New() *Engine {
	return fromGame(chess.NewGame())
}

// FromFEN loads a single position with no history
func FromFEN(fen string) (*Engine, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, &RulesError{Msg: fmt.Sprintf("invalid FEN %q", fen), Err: err}
	}
	return fromGame(chess.NewGame(opt)), nil
}

// FromPGN loads the mainline of a game. The live position is the end of the
// game.
func FromPGN(pgn string) (*Engine, error) {
	opt, err := chess.PGN(strings.NewReader(strings.TrimSpace(annotation.Strip(pgn))))
	if err != nil {
		return nil, &RulesError{Msg: "invalid PGN", Err: err}
	}
	return fromGame(chess.NewGame(opt)), nil
}

func fromGame(g *chess.Game) *Engine {
	e := &Engine{game: g}
	e.positions = append(e.positions, g.Positions()...)
	e.moves = append(e.moves, g.Moves()...)
	return e
}

func (e *Engine) position() *chess.Position {
	return e.positions[len(e.positions)-1]
}

// Apply plays the legal move from -> to. A promotion with no piece given
// promotes to a queen.
func (e *Engine) Apply(from, to chess.Square, promo chess.PieceType) (timeline.Move, error) {
	pos := e.position()
	var match *chess.Move
	for _, m := range pos.ValidMoves() {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == promo || (promo == chess.NoPieceType && m.Promo() == chess.Queen) {
			match = m
			break
		}
	}
	if match == nil {
		return timeline.Move{}, &RulesError{Msg: fmt.Sprintf("illegal move %s%s", from, to)}
	}
	rec := record(pos, match)
	e.positions = append(e.positions, pos.Update(match))
	e.moves = append(e.moves, match)
	return rec, nil
}

// Undo takes back the last applied move
func (e *Engine) Undo() error {
	if len(e.moves) == 0 {
		return &RulesError{Msg: "no move to undo"}
	}
	e.positions = e.positions[:len(e.positions)-1]
	e.moves = e.moves[:len(e.moves)-1]
	return nil
}

// History returns the applied moves with their notation
func (e *Engine) History() []timeline.Move {
	history := make([]timeline.Move, len(e.moves))
	for i, m := range e.moves {
		history[i] = record(e.positions[i], m)
	}
	return history
}

// FEN of the live position
func (e *Engine) FEN() string {
	return e.position().String()
}

// StartFEN of the position before the first move
func (e *Engine) StartFEN() string {
	return e.positions[0].String()
}

func (e *Engine) Turn() chess.Color {
	return e.position().Turn()
}

// InCheck reports whether the side to move is in check
func (e *Engine) InCheck() bool {
	if n := len(e.moves); n > 0 {
		return e.moves[n-1].HasTag(chess.Check)
	}
	return attacked(e.position())
}

// Dests lists the legal destinations of the piece on sq
func (e *Engine) Dests(sq chess.Square) []chess.Square {
	var dests []chess.Square
	for _, m := range e.position().ValidMoves() {
		if m.S1() == sq && !contains(dests, m.S2()) {
			dests = append(dests, m.S2())
		}
	}
	return dests
}

// Method is the game-ending method of the live position, if any
func (e *Engine) Method() chess.Method {
	return e.position().Status()
}

// Tag returns a PGN header value, or "" when absent
func (e *Engine) Tag(key string) string {
	if tp := e.game.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}

// Outcome of the loaded game record, which navigation does not change
func (e *Engine) Outcome() chess.Outcome {
	return e.game.Outcome()
}

func record(pos *chess.Position, m *chess.Move) timeline.Move {
	return timeline.Move{
		From:  m.S1(),
		To:    m.S2(),
		Promo: m.Promo(),
		SAN:   chess.AlgebraicNotation{}.Encode(pos, m),
	}
}

// attacked reports whether the king of the side to move is attacked. Attacks
// are pseudo-legal: a checking piece that is pinned still gives check.
func attacked(pos *chess.Position) bool {
	board := pos.Board()
	turn := pos.Turn()
	king := chess.NoSquare
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := board.Piece(sq); p.Type() == chess.King && p.Color() == turn {
			king = sq
			break
		}
	}
	if king == chess.NoSquare {
		return false
	}
	return isAttacked(board, king, turn.Other())
}

var (
	knightSteps   = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps     = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straightLines = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalLines = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// isAttacked reports whether a piece of color by attacks sq
func isAttacked(board *chess.Board, sq chess.Square, by chess.Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())
	pieceAt := func(f, r int) (chess.Piece, bool) {
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return chess.NoPiece, false
		}
		return board.Piece(chess.Square(r*8 + f)), true
	}
	is := func(p chess.Piece, types ...chess.PieceType) bool {
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	// a white pawn attacks upwards, so it stands one rank below sq
	pawnRank := rank - 1
	if by == chess.Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := pieceAt(file+df, pawnRank); ok && is(p, chess.Pawn) {
			return true
		}
	}
	for _, d := range knightSteps {
		if p, ok := pieceAt(file+d[0], rank+d[1]); ok && is(p, chess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if p, ok := pieceAt(file+d[0], rank+d[1]); ok && is(p, chess.King) {
			return true
		}
	}
	slides := func(lines [][2]int, types ...chess.PieceType) bool {
		for _, d := range lines {
			for f, r := file+d[0], rank+d[1]; ; f, r = f+d[0], r+d[1] {
				p, ok := pieceAt(f, r)
				if !ok {
					break
				}
				if p == chess.NoPiece {
					continue
				}
				if is(p, types...) {
					return true
				}
				break
			}
		}
		return false
	}
	return slides(straightLines, chess.Rook, chess.Queen) ||
		slides(diagonalLines, chess.Bishop, chess.Queen)
}

func contains(sqs []chess.Square, sq chess.Square) bool {
	for _, s := range sqs {
		if s == sq {
			return true
		}
	}
	return false
}
