package gui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
	"github.com/qnkhuat/chessview/pkg/config"
	"github.com/qnkhuat/chessview/pkg/document"
)

const note = "```chess-pgn\n" +
	"1. e4 e5 2. Nf3?? Nc6\n" +
	"```\n" +
	"\n" +
	"```chess\n" +
	"fen: 8/8/8/8/8/8/8/K6k w - - 0 1\n" +
	"pgn: 1. e4\n" +
	"```\n"

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestMoveListRedraw(t *testing.T) {
	l := NewMoveList(ThemeBrown)
	l.RedrawMoveList(boardsync.MoveList{
		Turn:   chess.White,
		Cursor: 1,
		Entries: []boardsync.Entry{
			{Index: 0, Number: 7, Color: chess.Black, Label: "Kd8"},
			{Index: 1, Number: 8, Color: chess.White, Label: "Qh5??", Annotation: annotation.Blunder, Active: true},
		},
	})
	if got := l.GetCell(0, 0).Text; got != "7." {
		t.Errorf("wanted move number 7 got %q", got)
	}
	if got := l.GetCell(0, 1).Text; got != "..." {
		t.Errorf("wanted a filler before black's move got %q", got)
	}
	if got := l.GetCell(0, 2).Text; got != "Kd8" {
		t.Errorf("wanted Kd8 got %q", got)
	}
	cell := l.GetCell(1, 1)
	if cell.Text != "Qh5??" || cell.Color != ThemeBrown.Blunder || cell.BackgroundColor != ThemeBrown.MoveActive {
		t.Errorf("unexpected active cell %+v", cell)
	}
	if i, ok := l.Index(1, 1); !ok || i != 1 {
		t.Errorf("wanted index 1 got %d", i)
	}
	if _, ok := l.Index(0, 1); ok {
		t.Error("the filler is not a move")
	}
	if row, col := l.GetSelection(); row != 1 || col != 1 {
		t.Errorf("cursor cell not selected, got (%d, %d)", row, col)
	}

	l.RedrawMoveList(boardsync.MoveList{Turn: chess.Black, Cursor: -1})
	if _, ok := l.Index(1, 1); ok {
		t.Error("cells kept after redraw")
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("blue").Name != "blue" {
		t.Error("blue theme not found")
	}
	if ThemeByName("nope").Name != "brown" {
		t.Error("unknown theme should fall back to brown")
	}
	if _, err := ImportTheme("nope", Themes); err == nil {
		t.Error("wanted an error for an unknown theme")
	}
	if ThemeBrown.AnnotationColor(annotation.None) != tcell.ColorDefault {
		t.Error("plain moves have no color")
	}
}

func TestAppLoad(t *testing.T) {
	a := NewApp(config.DefaultSettings)
	a.Load(document.Parse(note), pkg.DocumentState{})
	defer a.Close()

	if len(a.panes) != 2 {
		t.Fatalf("wanted 2 panes got %d", len(a.panes))
	}
	if a.panes[1].view != nil || !errors.Is(a.panes[1].err, config.ErrBothSources) {
		t.Errorf("second block should fail with %v got %v", config.ErrBothSources, a.panes[1].err)
	}
	if got := a.status.GetText(true); !strings.Contains(got, "chess:5: "+config.ErrBothSources.Error()) {
		t.Errorf("load error not in the status line, got %q", got)
	}

	v := a.Current()
	if v == nil || v.Cursor() != 3 {
		t.Fatal("first block not loaded at the end of the game")
	}
	if a.HandleKey(key(tcell.KeyLeft)) != nil || v.Cursor() != 2 {
		t.Errorf("left did not step back, cursor %d", v.Cursor())
	}
	a.HandleKey(key(tcell.KeyHome))
	if v.Cursor() != -1 {
		t.Errorf("home did not reset, cursor %d", v.Cursor())
	}
	a.HandleKey(key(tcell.KeyRight))
	if v.Cursor() != 0 {
		t.Errorf("right did not step forward, cursor %d", v.Cursor())
	}
	a.HandleKey(key(tcell.KeyEnd))
	if v.Cursor() != 3 {
		t.Errorf("end did not jump to the last move, cursor %d", v.Cursor())
	}

	board := a.panes[0].board
	a.HandleKey(char('f'))
	if board.Orientation() != chess.Black {
		t.Error("f did not flip the board")
	}
	a.HandleKey(char('s'))
	if a.panes[0].shown {
		t.Error("s did not hide the sidebar")
	}
	if a.HandleKey(char('x')) == nil {
		t.Error("unbound keys should pass through")
	}

	a.HandleKey(key(tcell.KeyTab))
	if a.current != 1 || a.Current() != nil {
		t.Error("tab did not move to the failed block")
	}
	if a.HandleKey(key(tcell.KeyLeft)) == nil {
		t.Error("a failed block has no moves to navigate")
	}
	a.HandleKey(key(tcell.KeyBacktab))
	if a.current != 0 {
		t.Error("backtab did not move back")
	}

	a.panes[0].list.OnSelect(1)
	if v.Cursor() != 1 {
		t.Errorf("selecting a move did not move the cursor, got %d", v.Cursor())
	}
}

func TestAppState(t *testing.T) {
	a := NewApp(config.DefaultSettings)
	blocks := document.Parse(note)
	a.Load(blocks, pkg.DocumentState{})
	a.Current().SetMoveIndex(0)
	state := a.State("note.md")
	if state.Path != "note.md" || len(state.Views) != 1 || state.Views[0].Cursor != 0 {
		t.Fatalf("unexpected state %+v", state)
	}

	a.Load(blocks, state)
	if a.Current().Cursor() != 0 {
		t.Errorf("reload did not restore the cursor, got %d", a.Current().Cursor())
	}
	board := a.panes[0].board
	a.Close()
	if a.Current() != nil {
		t.Error("closed app still has views")
	}
	if board.onMove != nil || board.interactive {
		t.Error("closed board still accepts moves")
	}
}

func TestAppNotify(t *testing.T) {
	a := NewApp(config.DefaultSettings)
	a.Notify("illegal move")
	if got := a.status.GetText(true); got != "illegal move" {
		t.Errorf("wanted the notice in the status line got %q", got)
	}
}
