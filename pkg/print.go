package pkg

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
)

var annotationColors = map[annotation.Annotation]*color.Color{
	annotation.Brilliant:  color.New(color.FgCyan, color.Bold),
	annotation.Great:      color.New(color.FgBlue),
	annotation.Inaccuracy: color.New(color.FgYellow),
	annotation.Mistake:    color.New(color.FgHiYellow),
	annotation.Blunder:    color.New(color.FgRed, color.Bold),
	annotation.Checkmate:  color.New(color.FgMagenta),
}

var activeColor = color.New(color.ReverseVideo)

// Printer writes the move list as text. It is the move list of the print
// mode, used when stdout is not a terminal.
type Printer struct {
	Out io.Writer
}

// RedrawMoveList prints the turn line and the numbered moves
func (p *Printer) RedrawMoveList(ml boardsync.MoveList) {
	turn := "White's turn"
	if ml.Turn == chess.Black {
		turn = "Black's turn"
	}
	fmt.Fprintln(p.Out, turn)

	var line strings.Builder
	for i, e := range ml.Entries {
		if e.Color == chess.White || i == 0 {
			if line.Len() > 0 {
				fmt.Fprintln(p.Out, line.String())
				line.Reset()
			}
			dots := "."
			if e.Color == chess.Black {
				dots = "..."
			}
			fmt.Fprintf(&line, "%3d%s", e.Number, dots)
		}
		label := e.Label
		if c, ok := annotationColors[e.Annotation]; ok {
			label = c.Sprint(label)
		}
		if e.Active {
			label = activeColor.Sprint(label)
		}
		line.WriteString(" " + label)
	}
	if line.Len() > 0 {
		fmt.Fprintln(p.Out, line.String())
	}
}

// TextBoard is the renderer of the print mode. It keeps the last snapshot and
// draws it on demand.
type TextBoard struct {
	Orientation chess.Color
	Snapshot    boardsync.Snapshot
	Icon        annotation.Annotation
	IconSquare  chess.Square
}

func (b *TextBoard) Init(opts boardsync.Options) {
	b.Orientation = opts.Orientation
}

func (b *TextBoard) Set(s boardsync.Snapshot) {
	b.Snapshot = s
}

func (b *TextBoard) ToggleOrientation() {
	b.Orientation = b.Orientation.Other()
}

func (b *TextBoard) Attach(sq chess.Square, a annotation.Annotation) {
	b.IconSquare = sq
	b.Icon = a
}

func (b *TextBoard) Detach() {
	b.Icon = annotation.None
	b.IconSquare = chess.NoSquare
}

// Print draws the board from the side of its orientation followed by the last
// move, the check flag and the annotation of the displayed move
func (b *TextBoard) Print(w io.Writer) error {
	opt, err := chess.FEN(b.Snapshot.FEN)
	if err != nil {
		return err
	}
	fmt.Fprint(w, drawBoard(chess.NewGame(opt).Position().Board(), b.Orientation))
	if b.Snapshot.HasLastMove {
		fmt.Fprintf(w, "last move %s%s", b.Snapshot.LastMove[0], b.Snapshot.LastMove[1])
		if b.Snapshot.Check {
			fmt.Fprint(w, ", check")
		}
		if b.Icon != annotation.None {
			c := annotationColors[b.Icon]
			fmt.Fprintf(w, ", %s", c.Sprint(b.Icon.Tooltip()))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// drawBoard lays out the board with ranks on the left and files below, the
// side of orientation at the bottom
func drawBoard(board *chess.Board, orientation chess.Color) string {
	var s strings.Builder
	for row := 0; row < 8; row++ {
		rank := chess.Rank(7 - row)
		if orientation == chess.Black {
			rank = chess.Rank(row)
		}
		s.WriteString(rank.String())
		for col := 0; col < 8; col++ {
			file := chess.File(col)
			if orientation == chess.Black {
				file = chess.File(7 - col)
			}
			p := board.Piece(chess.Square(int(rank)*8 + int(file)))
			if p == chess.NoPiece {
				s.WriteString(" -")
			} else {
				s.WriteString(" " + p.String())
			}
		}
		s.WriteString("\n")
	}
	s.WriteString(" ")
	for col := 0; col < 8; col++ {
		file := chess.File(col)
		if orientation == chess.Black {
			file = chess.File(7 - col)
		}
		s.WriteString(" " + file.String())
	}
	s.WriteString("\n")
	return s.String()
}
