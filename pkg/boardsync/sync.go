// Package boardsync translates the timeline state into what the board
// renderer and the move list display. Sync is the only writer of renderer
// state.
package boardsync

import (
	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/timeline"
)

// Position is the read side of the rules engine
type Position interface {
	FEN() string
	Turn() chess.Color
	InCheck() bool
	Dests(sq chess.Square) []chess.Square
}

// Options initialize a renderer
type Options struct {
	FEN         string
	Orientation chess.Color
	Interactive bool
	// OnMove is called when the user drags or selects a piece from one
	// square to another. It must return before another transition starts.
	OnMove func(from, to chess.Square)
}

// Snapshot is everything the renderer draws for one timeline state
type Snapshot struct {
	FEN         string
	LastMove    [2]chess.Square
	HasLastMove bool
	Dests       map[chess.Square][]chess.Square
	Turn        chess.Color
	Check       bool
}

// Renderer displays a position and reports move gestures
type Renderer interface {
	Init(opts Options)
	Set(s Snapshot)
	ToggleOrientation()
	// Attach anchors an annotation icon to sq. It is safe to call any time
	// after Set.
	Attach(sq chess.Square, a annotation.Annotation)
	Detach()
}

// Entry is one move in the move list
type Entry struct {
	Index      int
	Number     int // full move number
	Color      chess.Color
	Label      string // notation with its inline marker
	Annotation annotation.Annotation
	Active     bool
}

// MoveList is the state of the move list UI
type MoveList struct {
	Turn    chess.Color
	Cursor  int
	Entries []Entry
}

// MoveListView redraws the move list. Redraws must be idempotent.
type MoveListView interface {
	RedrawMoveList(ml MoveList)
}

type Sync struct {
	pos             Position
	timeline        *timeline.Timeline
	renderer        Renderer
	lists           []MoveListView
	showAnnotations bool
	opts            Options
	firstColor      chess.Color
	firstNumber     int
}

// New binds a timeline and its rules position to a renderer. The move lists
// are redrawn after every refresh.
func New(pos Position, tl *timeline.Timeline, r Renderer, showAnnotations bool, lists ...MoveListView) *Sync {
	return &Sync{
		pos:             pos,
		timeline:        tl,
		renderer:        r,
		lists:           lists,
		showAnnotations: showAnnotations,
		firstColor:      chess.White,
		firstNumber:     1,
	}
}

// SetStart sets the side and move number of the first ply, for games that
// do not start from the initial position.
func (s *Sync) SetStart(c chess.Color, number int) {
	s.firstColor = c
	s.firstNumber = number
}

// Init initializes the renderer and draws the current state
func (s *Sync) Init(opts Options) {
	opts.FEN = s.pos.FEN()
	s.opts = opts
	s.renderer.Init(opts)
	s.Refresh()
}

// AddMoveList registers another move list
func (s *Sync) AddMoveList(l MoveListView) {
	s.lists = append(s.lists, l)
	l.RedrawMoveList(s.MoveList())
}

// Snapshot computes the renderer state for the current cursor
func (s *Sync) Snapshot() Snapshot {
	snap := Snapshot{
		FEN:   s.pos.FEN(),
		Dests: make(map[chess.Square][]chess.Square),
		Turn:  s.pos.Turn(),
		Check: s.pos.InCheck(),
	}
	if m, ok := s.timeline.Current(); ok {
		snap.LastMove = [2]chess.Square{m.From, m.To}
		snap.HasLastMove = true
	}
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if dests := s.pos.Dests(sq); len(dests) > 0 {
			snap.Dests[sq] = dests
		}
	}
	return snap
}

// MoveList computes the move list state
func (s *Sync) MoveList() MoveList {
	moves := s.timeline.Moves()
	ml := MoveList{
		Turn:    s.pos.Turn(),
		Cursor:  s.timeline.Cursor(),
		Entries: make([]Entry, len(moves)),
	}
	for i, m := range moves {
		ply := i
		if s.firstColor == chess.Black {
			ply++
		}
		color := chess.White
		if ply%2 == 1 {
			color = chess.Black
		}
		entry := Entry{
			Index:  i,
			Number: s.firstNumber + ply/2,
			Color:  color,
			Label:  m.SAN,
			Active: i == ml.Cursor,
		}
		if s.showAnnotations {
			entry.Label = m.Label()
			entry.Annotation = m.Annotation
		}
		ml.Entries[i] = entry
	}
	return ml
}

// Refresh pushes the current state to the renderer and the move lists
func (s *Sync) Refresh() {
	s.renderer.Set(s.Snapshot())
	s.renderer.Detach()
	if m, ok := s.timeline.Current(); ok && s.showAnnotations && icon(m) {
		s.renderer.Attach(m.To, m.Annotation)
	}
	ml := s.MoveList()
	for _, l := range s.lists {
		l.RedrawMoveList(ml)
	}
}

// Flip toggles the board orientation
func (s *Sync) Flip() {
	s.opts.Orientation = s.opts.Orientation.Other()
	s.renderer.ToggleOrientation()
}

// Close detaches the annotation icon, drops the move lists and leaves the
// renderer read-only with no move callback
func (s *Sync) Close() {
	s.opts.FEN = s.pos.FEN()
	s.opts.Interactive = false
	s.opts.OnMove = nil
	s.renderer.Init(s.opts)
	s.renderer.Detach()
	s.lists = nil
}

// icon reports whether m gets an icon on the board. The checkmate glyph in
// the notation describes itself.
func icon(m timeline.Move) bool {
	return m.Annotation != annotation.None && !m.Mates()
}
