package engine

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestApplyAndUndo(t *testing.T) {
	e := New()
	start := e.FEN()

	m, err := e.Apply(chess.E2, chess.E4, chess.NoPieceType)
	if err != nil {
		t.Fatalf("failed to apply e2e4: %s", err)
	}
	if m.SAN != "e4" || m.From != chess.E2 || m.To != chess.E4 {
		t.Errorf("unexpected move record %+v", m)
	}
	if e.Turn() != chess.Black {
		t.Errorf("wanted black to move got %s", e.Turn())
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.FEN() != start {
		t.Errorf("undo did not restore the start position: %s", e.FEN())
	}
	if err := e.Undo(); err == nil {
		t.Error("failed to reject undo at the start position")
	}
}

func TestApplyIllegal(t *testing.T) {
	e := New()
	before := e.FEN()
	_, err := e.Apply(chess.E2, chess.E5, chess.NoPieceType)
	if err == nil {
		t.Fatal("failed to reject e2e5")
	}
	var rerr *RulesError
	if !errors.As(err, &rerr) {
		t.Errorf("wanted a RulesError got %T", err)
	}
	if e.FEN() != before || len(e.History()) != 0 {
		t.Error("illegal move changed the position")
	}
}

func TestFromFENErrors(t *testing.T) {
	if _, err := FromFEN("not a position"); err == nil {
		t.Error("failed to reject malformed FEN")
	}
	e, err := FromFEN("8/8/8/8/8/8/8/K6k w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if len(e.History()) != 0 {
		t.Error("FEN position should have no history")
	}
}

func TestFromPGN(t *testing.T) {
	e, err := FromPGN("1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7#")
	if err != nil {
		t.Fatal(err)
	}
	history := e.History()
	want := []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7#"}
	if len(history) != len(want) {
		t.Fatalf("wanted %d moves got %d", len(want), len(history))
	}
	for i := range want {
		if history[i].SAN != want[i] {
			t.Errorf("move %d: wanted %s got %s", i, want[i], history[i].SAN)
		}
	}
	if !e.InCheck() {
		t.Error("wanted black in check after mate")
	}
	if e.Method() != chess.Checkmate {
		t.Errorf("wanted checkmate got %s", e.Method())
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	e, err := FromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Apply(chess.A7, chess.A8, chess.NoPieceType)
	if err != nil {
		t.Fatal(err)
	}
	if m.Promo != chess.Queen {
		t.Errorf("wanted queen promotion got %s", m.Promo)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	m, err = e.Apply(chess.A7, chess.A8, chess.Knight)
	if err != nil {
		t.Fatal(err)
	}
	if m.Promo != chess.Knight {
		t.Errorf("wanted knight promotion got %s", m.Promo)
	}
}

func TestDests(t *testing.T) {
	e := New()
	dests := e.Dests(chess.G1)
	if len(dests) != 2 {
		t.Fatalf("wanted 2 knight moves got %v", dests)
	}
	if len(e.Dests(chess.E4)) != 0 {
		t.Error("empty square should have no destinations")
	}
	if len(e.Dests(chess.E7)) != 0 {
		t.Error("black pawn cannot move on white's turn")
	}
}

func TestInCheckFromFEN(t *testing.T) {
	e, err := FromFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !e.InCheck() {
		t.Error("wanted white in check")
	}
	e, err = FromFEN("4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if e.InCheck() {
		t.Error("white is not in check")
	}
}

func TestInCheckByPinnedPiece(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		// the checking bishop is pinned by the rook against its own king
		{"1r2k3/8/8/1B6/8/8/8/1K6 b - - 0 1", true},
		{"4k3/8/8/8/8/8/8/1K2N3 b - - 0 1", false},
		{"4k3/3P4/8/8/8/8/8/1K6 b - - 0 1", true},
		{"4k3/4P3/8/8/8/8/8/1K6 b - - 0 1", false},
		{"4k3/8/8/8/4p3/3K4/8/8 w - - 0 1", true},
		{"4k3/8/8/8/4N3/8/8/Kn6 w - - 0 1", false},
		{"4k3/4n3/8/8/8/8/8/4R2K b - - 0 1", false},
		{"4k3/8/5N2/8/8/8/8/4K3 b - - 0 1", true},
	}
	for _, tt := range tests {
		e, err := FromFEN(tt.fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.InCheck(); got != tt.want {
			t.Errorf("%s: wanted check %v got %v", tt.fen, tt.want, got)
		}
	}
}

func TestFromPGNSkipsVariationsAndNAGs(t *testing.T) {
	e, err := FromPGN("[White \"A\"]\n\n" + `1. e4 $1 e5 (1... c5 2. Nf3 {Sicilian}) 2. Nf3 $4 Nc6`)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(e.History()); got != 4 {
		t.Errorf("wanted the 4 mainline moves got %d", got)
	}
	if e.Tag("White") != "A" {
		t.Errorf("tag pair lost, got %q", e.Tag("White"))
	}
}
