package gui

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chessview/pkg/annotation"
	"github.com/qnkhuat/chessview/pkg/boardsync"
	"github.com/rivo/tview"
)

// MoveList shows the numbered moves next to the board. Selecting a move
// calls OnSelect with its index.
type MoveList struct {
	*tview.Table
	Theme    Theme
	OnSelect func(i int)
	cells    map[[2]int]int
}

func NewMoveList(theme Theme) *MoveList {
	l := &MoveList{
		Table: tview.NewTable(),
		Theme: theme,
		cells: make(map[[2]int]int),
	}
	l.SetBorder(true)
	l.SetSelectable(true, true)
	l.SetSelectedFunc(func(row, col int) {
		if i, ok := l.cells[[2]int{row, col}]; ok && l.OnSelect != nil {
			l.OnSelect(i)
		}
	})
	return l
}

// RedrawMoveList implements boardsync.MoveListView
func (l *MoveList) RedrawMoveList(ml boardsync.MoveList) {
	l.Clear()
	l.cells = make(map[[2]int]int)

	if ml.Turn == chess.Black {
		l.SetTitle(" Black's turn ")
	} else {
		l.SetTitle(" White's turn ")
	}
	if len(ml.Entries) == 0 {
		return
	}

	first := ml.Entries[0].Number
	for _, e := range ml.Entries {
		row := e.Number - first
		col := 1
		if e.Color == chess.Black {
			col = 2
		}
		if l.GetCell(row, 0).Text == "" {
			l.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d.", e.Number)).
				SetTextColor(l.Theme.Msg).
				SetSelectable(false))
		}
		if e.Color == chess.Black && l.GetCell(row, 1).Text == "" {
			l.SetCell(row, 1, tview.NewTableCell("...").SetSelectable(false))
		}

		cell := tview.NewTableCell(e.Label).SetExpansion(1)
		if e.Annotation != annotation.None {
			cell.SetTextColor(l.Theme.AnnotationColor(e.Annotation))
		}
		if e.Active {
			cell.SetBackgroundColor(l.Theme.MoveActive)
		}
		l.SetCell(row, col, cell)
		l.cells[[2]int{row, col}] = e.Index
	}

	if ml.Cursor >= 0 {
		for cell, i := range l.cells {
			if i == ml.Cursor {
				l.Select(cell[0], cell[1])
			}
		}
	} else {
		l.ScrollToBeginning()
	}
}

// Index returns the move shown at a cell
func (l *MoveList) Index(row, col int) (int, bool) {
	i, ok := l.cells[[2]int{row, col}]
	return i, ok
}
