package pkg

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
	"github.com/qnkhuat/chessview/pkg/config"
	"github.com/qnkhuat/chessview/pkg/engine"
	"github.com/qnkhuat/chessview/pkg/timeline"
)

// View is one interactive board. It owns the rules engine, the timeline and
// the sync to its renderer.
type View struct {
	ID       string
	Config   config.Config
	engine   *engine.Engine
	timeline *timeline.Timeline
	sync     *boardsync.Sync
	busy     bool
	closed   bool

	// Notify shows a rejected operation to the reader
	Notify func(msg string)
}

// NewView loads the game described by cfg and draws it on r. When loading
// fails nothing is drawn and no state is kept.
func NewView(cfg config.Config, r boardsync.Renderer, lists ...boardsync.MoveListView) (*View, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := cfg.ID
	if id == "" {
		id = NewName()
	}

	var (
		e    *engine.Engine
		anns []annotation.Annotation
		err  error
	)
	if strings.TrimSpace(cfg.PGN) != "" {
		e, err = engine.FromPGN(cfg.PGN)
		anns = annotation.Parse(cfg.PGN)
	} else {
		e, err = engine.FromFEN(cfg.FEN)
	}
	if err != nil {
		return nil, err
	}

	v := &View{
		ID:       id,
		Config:   cfg,
		engine:   e,
		timeline: timeline.New(e, anns),
	}
	if cfg.CurrentMoveIndex != nil {
		if err := v.timeline.SetCursor(*cfg.CurrentMoveIndex); err != nil {
			return nil, err
		}
	}

	v.sync = boardsync.New(e, v.timeline, r, cfg.ShowAnnotations, lists...)
	v.sync.SetStart(startOf(e.StartFEN()))
	v.sync.Init(boardsync.Options{
		Orientation: cfg.Color(),
		Interactive: !cfg.ViewOnly,
		OnMove:      v.HandleMove,
	})
	log.Printf("[%s] loaded %d moves, cursor %d", v.ID, v.timeline.Len(), v.timeline.Cursor())
	return v, nil
}

// Cursor is the index of the displayed move, -1 at the start position
func (v *View) Cursor() int {
	return v.timeline.Cursor()
}

func (v *View) Moves() []timeline.Move {
	return v.timeline.Moves()
}

func (v *View) FEN() string {
	return v.engine.FEN()
}

func (v *View) Turn() chess.Color {
	return v.engine.Turn()
}

// Title is the game's players when the record names them
func (v *View) Title() string {
	white, black := v.engine.Tag("White"), v.engine.Tag("Black")
	if white == "" && black == "" {
		return ""
	}
	title := fmt.Sprintf("%s - %s", white, black)
	if o := v.engine.Outcome(); o != chess.NoOutcome {
		title += " " + string(o)
	}
	return title
}

// Result names how the displayed position ends the game, "" while it goes on
func (v *View) Result() string {
	if m := v.engine.Method(); m != chess.NoMethod {
		return m.String()
	}
	return ""
}

// MoveList is the current move list state
func (v *View) MoveList() boardsync.MoveList {
	return v.sync.MoveList()
}

// AddMoveList registers a move list after construction
func (v *View) AddMoveList(l boardsync.MoveListView) {
	if v.closed {
		return
	}
	v.sync.AddMoveList(l)
}

func (v *View) Next() {
	v.transition("next", v.timeline.Next)
}

func (v *View) Previous() {
	v.transition("previous", v.timeline.Previous)
}

// Reset shows the starting position
func (v *View) Reset() {
	v.transition("reset", v.timeline.Reset)
}

// End shows the last recorded move
func (v *View) End() {
	v.transition("end", v.timeline.End)
}

// SetMoveIndex shows the position after move i. Out of range indexes are
// ignored.
func (v *View) SetMoveIndex(i int) {
	v.transition("set "+strconv.Itoa(i), func() error {
		return v.timeline.SetCursor(i)
	})
}

// HandleMove plays the move made on the board. A rejected move redraws the
// board at the timeline position.
func (v *View) HandleMove(from, to chess.Square) {
	if v.Config.ViewOnly {
		return
	}
	v.transition("move "+from.String()+to.String(), func() error {
		m, err := v.timeline.AppendMove(from, to, chess.NoPieceType)
		if err != nil {
			return err
		}
		log.Printf("[%s] played %s, %d moves", v.ID, m.SAN, v.timeline.Len())
		return nil
	})
}

// Flip toggles the board orientation
func (v *View) Flip() {
	if v.closed || v.busy {
		return
	}
	v.sync.Flip()
}

// State is what the host persists to restore the view later
func (v *View) State() ViewState {
	return ViewState{Source: v.Config.Source(), Cursor: v.timeline.Cursor()}
}

// Restore moves the cursor back to a persisted state when it belongs to the
// same game source
func (v *View) Restore(s ViewState) bool {
	if strings.TrimSpace(s.Source) != strings.TrimSpace(v.Config.Source()) {
		return false
	}
	v.SetMoveIndex(s.Cursor)
	return v.timeline.Cursor() == s.Cursor
}

// Close releases the renderer and the move lists. Later commands are ignored.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.sync.Close()
	log.Printf("[%s] closed", v.ID)
}

// transition runs one timeline operation and refreshes the board. A
// transition requested while another is running is dropped.
func (v *View) transition(name string, op func() error) {
	if v.closed {
		return
	}
	if v.busy {
		log.Printf("[%s] dropped re-entrant %s", v.ID, name)
		return
	}
	v.busy = true
	defer func() { v.busy = false }()

	if err := op(); err != nil {
		log.Printf("[%s] %s: %v", v.ID, name, err)
		if v.Notify != nil {
			v.Notify(err.Error())
		}
	}
	v.sync.Refresh()
}

// startOf returns the side to move and the move number of a FEN
func startOf(fen string) (chess.Color, int) {
	fields := strings.Fields(fen)
	color := chess.White
	if len(fields) > 1 && fields[1] == "b" {
		color = chess.Black
	}
	number := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return color, number
}
