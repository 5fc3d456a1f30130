package gui

import (
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func newTestBoard(t *testing.T, orientation chess.Color) (*Board, *[][2]chess.Square) {
	t.Helper()
	var moves [][2]chess.Square
	b := NewBoard(ThemeBrown, true)
	b.Init(boardsync.Options{
		FEN:         startFEN,
		Orientation: orientation,
		Interactive: true,
		OnMove:      func(from, to chess.Square) { moves = append(moves, [2]chess.Square{from, to}) },
	})
	b.Set(boardsync.Snapshot{
		FEN:   startFEN,
		Turn:  chess.White,
		Dests: map[chess.Square][]chess.Square{chess.E2: {chess.E3, chess.E4}},
	})
	return b, &moves
}

func TestBoardSquareMapping(t *testing.T) {
	tests := []struct {
		orientation chess.Color
		row, col    int
		want        chess.Square
	}{
		{chess.White, 7, 1, chess.A1},
		{chess.White, 7, 5, chess.E1},
		{chess.White, 0, 8, chess.H8},
		{chess.Black, 7, 5, chess.D8},
		{chess.Black, 0, 1, chess.H1},
	}
	for _, tt := range tests {
		b := NewBoard(ThemeBrown, false)
		b.orientation = tt.orientation
		got, ok := b.cellToSquare(tt.row, tt.col)
		if !ok || got != tt.want {
			t.Errorf("%s (%d, %d): wanted %s got %s", tt.orientation, tt.row, tt.col, tt.want, got)
		}
		if r, c := b.squareToCell(got); r != tt.row || c != tt.col {
			t.Errorf("%s %s: wanted cell (%d, %d) got (%d, %d)", tt.orientation, got, tt.row, tt.col, r, c)
		}
	}

	b := NewBoard(ThemeBrown, false)
	if _, ok := b.cellToSquare(8, 1); ok {
		t.Error("the files row is not a square")
	}
	if _, ok := b.cellToSquare(3, 0); ok {
		t.Error("the ranks column is not a square")
	}
}

func TestBoardCoordinates(t *testing.T) {
	b, _ := newTestBoard(t, chess.White)
	if got := b.GetCell(7, 0).Text; got != "1" {
		t.Errorf("wanted rank 1 got %q", got)
	}
	if got := b.GetCell(8, 1).Text; got != " a" {
		t.Errorf("wanted file a got %q", got)
	}

	b.ToggleOrientation()
	if b.Orientation() != chess.Black {
		t.Error("orientation not toggled")
	}
	if got := b.GetCell(7, 0).Text; got != "8" {
		t.Errorf("wanted rank 8 got %q", got)
	}
	if got := b.GetCell(8, 1).Text; got != " h" {
		t.Errorf("wanted file h got %q", got)
	}
}

func TestBoardSelectMove(t *testing.T) {
	b, moves := newTestBoard(t, chess.White)

	// a square without moves does not start a selection
	b.selectCell(6, 1)
	if b.selecting {
		t.Fatal("a2 has no moves in the snapshot")
	}

	b.selectCell(6, 5)
	if !b.selecting || b.selection != chess.E2 {
		t.Fatal("e2 not selected")
	}
	if got := b.GetCell(6, 5).BackgroundColor; got != b.Theme.SquareSelect {
		t.Errorf("selected square has background %v", got)
	}
	if got := b.GetCell(4, 5).BackgroundColor; got != b.Theme.SquareDest {
		t.Errorf("destination square has background %v", got)
	}

	b.selectCell(6, 5)
	if b.selecting {
		t.Error("choosing the origin again should deactivate it")
	}

	b.selectCell(6, 5)
	b.selectCell(4, 5)
	if len(*moves) != 1 || (*moves)[0] != [2]chess.Square{chess.E2, chess.E4} {
		t.Errorf("wanted e2e4 got %v", *moves)
	}
	if b.selecting {
		t.Error("selection kept after a move")
	}
}

func TestBoardViewOnly(t *testing.T) {
	called := false
	b := NewBoard(ThemeBrown, true)
	b.Init(boardsync.Options{FEN: startFEN, OnMove: func(from, to chess.Square) { called = true }})
	b.Set(boardsync.Snapshot{FEN: startFEN, Dests: map[chess.Square][]chess.Square{chess.E2: {chess.E4}}})
	b.selectCell(6, 5)
	b.selectCell(4, 5)
	if called || b.selecting {
		t.Error("a view only board accepted a move")
	}
}

func TestBoardHighlights(t *testing.T) {
	b, _ := newTestBoard(t, chess.White)
	after := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	b.Set(boardsync.Snapshot{
		FEN:         after,
		LastMove:    [2]chess.Square{chess.E2, chess.E4},
		HasLastMove: true,
		Turn:        chess.Black,
	})
	if got := b.GetCell(4, 5).BackgroundColor; got != b.Theme.SquareHigh {
		t.Errorf("last move square has background %v", got)
	}
	if got := b.GetCell(7, 1).BackgroundColor; got != b.Theme.SquareDark {
		t.Errorf("a1 has background %v", got)
	}
	if got := b.GetCell(7, 2).BackgroundColor; got != b.Theme.SquareLight {
		t.Errorf("b1 has background %v", got)
	}

	b.Attach(chess.E4, annotation.Blunder)
	cell := b.GetCell(4, 5)
	if !strings.HasSuffix(cell.Text, "??") || cell.Color != b.Theme.Blunder {
		t.Errorf("unexpected annotated cell %q", cell.Text)
	}
	b.Detach()
	if strings.Contains(b.GetCell(4, 5).Text, "?") {
		t.Error("annotation not removed")
	}

	check := "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1"
	b.Set(boardsync.Snapshot{FEN: check, Turn: chess.White, Check: true})
	if got := b.GetCell(7, 5).BackgroundColor; got != b.Theme.SquareCheck {
		t.Errorf("king in check has background %v", got)
	}
}
