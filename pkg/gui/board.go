package gui

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
	"github.com/rivo/tview"
)

const (
	numrows = 8
	numcols = 8
)

// Board renders a position on a tview table. Column 0 holds the ranks and
// row 8 the files.
type Board struct {
	*tview.Table
	Theme       Theme
	Coordinates bool

	orientation chess.Color
	interactive bool
	onMove      func(from, to chess.Square)
	snap        boardsync.Snapshot
	board       *chess.Board
	icon        annotation.Annotation
	iconSquare  chess.Square
	selecting   bool
	selection   chess.Square
}

func NewBoard(theme Theme, coordinates bool) *Board {
	b := &Board{
		Table:       tview.NewTable(),
		Theme:       theme,
		Coordinates: coordinates,
		orientation: chess.White,
		iconSquare:  chess.NoSquare,
		selection:   chess.NoSquare,
	}
	b.board = chess.NewGame().Position().Board()
	return b
}

// Init implements boardsync.Renderer
func (b *Board) Init(opts boardsync.Options) {
	b.orientation = opts.Orientation
	b.interactive = opts.Interactive
	b.onMove = opts.OnMove
	b.snap = boardsync.Snapshot{FEN: opts.FEN}
	b.load(opts.FEN)

	b.SetSelectable(b.interactive, b.interactive)
	if b.interactive {
		b.Select(0, 1)
	}
	b.SetSelectedFunc(b.selectCell)
	b.render()
}

// Set implements boardsync.Renderer
func (b *Board) Set(s boardsync.Snapshot) {
	b.snap = s
	b.load(s.FEN)
	b.clearSelection()
	b.render()
}

// ToggleOrientation implements boardsync.Renderer
func (b *Board) ToggleOrientation() {
	b.orientation = b.orientation.Other()
	b.render()
}

// Attach implements boardsync.Renderer
func (b *Board) Attach(sq chess.Square, a annotation.Annotation) {
	b.icon = a
	b.iconSquare = sq
	b.render()
}

// Detach implements boardsync.Renderer
func (b *Board) Detach() {
	b.icon = annotation.None
	b.iconSquare = chess.NoSquare
	b.render()
}

func (b *Board) Orientation() chess.Color {
	return b.orientation
}

func (b *Board) load(fen string) {
	if fen == "" {
		return
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		log.Printf("board: %v", err)
		return
	}
	b.board = chess.NewGame(opt).Position().Board()
}

func (b *Board) clearSelection() {
	b.selecting = false
	b.selection = chess.NoSquare
}

// selectCell picks the origin of a move on the first selection and its
// destination on the second
func (b *Board) selectCell(row, col int) {
	sq, ok := b.cellToSquare(row, col)
	if !ok || !b.interactive {
		return
	}
	if !b.selecting {
		if len(b.snap.Dests[sq]) > 0 {
			b.selecting = true
			b.selection = sq
		}
		b.render()
		return
	}

	from := b.selection
	switch {
	case sq == from: // chose the origin again to deactivate
		b.clearSelection()
	case containsSquare(b.snap.Dests[from], sq):
		b.clearSelection()
		if b.onMove != nil {
			b.onMove(from, sq)
			return
		}
	case len(b.snap.Dests[sq]) > 0:
		b.selection = sq
	default:
		b.clearSelection()
	}
	b.render()
}

// cellToSquare maps a table cell to a board square
func (b *Board) cellToSquare(row, col int) (chess.Square, bool) {
	if row < 0 || row >= numrows || col < 1 || col > numcols {
		return chess.NoSquare, false
	}
	rank := numrows - row - 1
	file := col - 1
	if b.orientation == chess.Black {
		rank = row
		file = numcols - col
	}
	return chess.Square(rank*8 + file), true
}

// squareToCell maps a board square to its table cell
func (b *Board) squareToCell(sq chess.Square) (row, col int) {
	rank, file := int(sq.Rank()), int(sq.File())
	if b.orientation == chess.Black {
		return rank, numcols - file
	}
	return numrows - rank - 1, file + 1
}

func (b *Board) squareBg(sq chess.Square) tcell.Color {
	switch {
	case b.selecting && sq == b.selection:
		return b.Theme.SquareSelect
	case b.selecting && containsSquare(b.snap.Dests[b.selection], sq):
		return b.Theme.SquareDest
	case b.snap.Check && b.isKingToMove(sq):
		return b.Theme.SquareCheck
	case b.snap.HasLastMove && (sq == b.snap.LastMove[0] || sq == b.snap.LastMove[1]):
		return b.Theme.SquareHigh
	case (int(sq.File())+int(sq.Rank()))%2 == 0:
		return b.Theme.SquareDark
	default:
		return b.Theme.SquareLight
	}
}

func (b *Board) isKingToMove(sq chess.Square) bool {
	p := b.board.Piece(sq)
	return p.Type() == chess.King && p.Color() == b.snap.Turn
}

func (b *Board) render() {
	var r, c int
	for r = 0; r <= numrows; r++ {
		for c = 0; c <= numcols; c++ {
			if c == 0 && r != numrows { // draw rank square
				text := ""
				if b.Coordinates {
					sq, _ := b.cellToSquare(r, 1)
					text = sq.Rank().String()
				}
				b.SetCell(r, c, tview.NewTableCell(text).
					SetTextColor(b.Theme.Rank).
					SetAlign(tview.AlignCenter).
					SetSelectable(false))
				continue
			}

			if r == numrows { // draw files square
				text := ""
				if b.Coordinates && c > 0 {
					sq, _ := b.cellToSquare(0, c)
					text = fmt.Sprintf(" %s", sq.File().String())
				}
				b.SetCell(r, c, tview.NewTableCell(text).
					SetTextColor(b.Theme.File).
					SetAlign(tview.AlignCenter).
					SetSelectable(false))
				continue
			}

			sq, _ := b.cellToSquare(r, c)
			b.SetCell(r, c, b.squareCell(sq))
		}
	}
}

func (b *Board) squareCell(sq chess.Square) *tview.TableCell {
	p := b.board.Piece(sq)
	text := " "
	fg := b.Theme.White
	if p != chess.NoPiece {
		text = p.String()
		if p.Color() == chess.Black {
			fg = b.Theme.Black
		}
	}
	if sq == b.iconSquare && b.icon != annotation.None {
		text += b.icon.Glyph()
		fg = b.Theme.AnnotationColor(b.icon)
	} else {
		text = " " + text
	}
	return tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetTextColor(fg).
		SetBackgroundColor(b.squareBg(sq))
}

func containsSquare(sqs []chess.Square, sq chess.Square) bool {
	for _, s := range sqs {
		if s == sq {
			return true
		}
	}
	return false
}
