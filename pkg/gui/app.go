package gui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/chessview/pkg"
	"github.com/qnkhuat/chessview/pkg/config"
	"github.com/qnkhuat/chessview/pkg/document"
	"github.com/rivo/tview"
)

const (
	boardWidth   = 31
	boardHeight  = 11
	sidebarWidth = 28
	helpText     = "←/→ move  home/end  f flip  r reset  s sidebar  tab next board  q quit"
)

// pane is the page of one chess block
type pane struct {
	block   document.Block
	view    *pkg.View
	board   *Board
	list    *MoveList
	layout  *tview.Flex
	sidebar *tview.Flex
	shown   bool
	err     error
	root    tview.Primitive
}

// App shows every chess block of a document, one page per block
type App struct {
	*tview.Application
	Settings config.Settings
	Theme    Theme

	pages   *tview.Pages
	status  *tview.TextView
	panes   []*pane
	current int
}

func NewApp(settings config.Settings) *App {
	a := &App{
		Application: tview.NewApplication(),
		Settings:    settings,
		Theme:       ThemeByName(settings.BoardStyle),
		pages:       tview.NewPages(),
		status:      tview.NewTextView(),
	}
	a.status.SetTextColor(a.Theme.Msg)
	a.status.SetText(helpText)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.status, 1, 0, false)
	a.SetRoot(root, true)
	a.SetInputCapture(a.HandleKey)
	return a
}

// Load replaces the pages with the blocks of a document. Views whose source
// matches a saved state resume at the saved cursor.
func (a *App) Load(blocks []document.Block, state pkg.DocumentState) {
	a.closePanes()
	var failed []string
	for i, block := range blocks {
		p := a.newPane(block)
		if p.view != nil {
			if s, ok := state.Find(p.view.Config.Source()); ok {
				p.view.Restore(s)
			}
		} else {
			failed = append(failed, fmt.Sprintf("%s: %v", block.Title(), p.err))
		}
		a.panes = append(a.panes, p)
		a.pages.AddPage(strconv.Itoa(i), p.root, true, i == 0)
	}
	if len(a.panes) == 0 {
		empty := tview.NewTextView().SetText("No chess blocks found.")
		a.pages.AddPage("empty", empty, true, true)
		return
	}
	a.show(0)
	if len(failed) > 0 {
		a.Notify(strings.Join(failed, "; "))
	}
}

// State collects the persisted state of every loaded view
func (a *App) State(path string) pkg.DocumentState {
	s := pkg.DocumentState{Path: path}
	for _, p := range a.panes {
		if p.view != nil {
			s.Views = append(s.Views, p.view.State())
		}
	}
	return s
}

// Current is the view of the visible page, nil when it failed to load
func (a *App) Current() *pkg.View {
	if a.current >= len(a.panes) {
		return nil
	}
	return a.panes[a.current].view
}

// Close tears down every view
func (a *App) Close() {
	a.closePanes()
}

func (a *App) closePanes() {
	for i, p := range a.panes {
		if p.view != nil {
			p.view.Close()
		}
		a.pages.RemovePage(strconv.Itoa(i))
	}
	a.pages.RemovePage("empty")
	a.panes = nil
	a.current = 0
}

func (a *App) newPane(block document.Block) *pane {
	p := &pane{block: block}
	cfg, err := block.Config(a.Settings)
	if err == nil {
		theme := ThemeByName(cfg.BoardStyle)
		p.board = NewBoard(theme, cfg.EnableCoordinates)
		p.list = NewMoveList(theme)
		p.view, err = pkg.NewView(cfg, p.board, p.list)
	}
	if err != nil {
		p.err = err
		log.Printf("%s: %v", block.Title(), err)
		text := tview.NewTextView().
			SetTextColor(a.Theme.Error).
			SetText(err.Error())
		text.SetBorder(true).SetTitle(" " + block.Title() + " ")
		p.root = text
		return p
	}

	v := p.view
	v.Notify = a.Notify
	p.list.OnSelect = v.SetMoveIndex
	title := v.Title()
	if title == "" {
		title = block.Title()
	}
	p.board.SetBorder(true).SetTitle(" " + title + " ")

	toolbar := tview.NewFlex().
		AddItem(a.button(ActionPrevious, v.Previous), 0, 1, false).
		AddItem(a.button(ActionNext, v.Next), 0, 1, false).
		AddItem(a.button(ActionFlip, v.Flip), 0, 1, false).
		AddItem(a.button(ActionReset, v.Reset), 0, 1, false).
		AddItem(a.button(ActionHideMenu, func() { a.toggleSidebar(p) }), 0, 1, false)
	p.sidebar = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.list, 0, 1, false).
		AddItem(toolbar, 1, 0, false)

	boardColumn := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.board, boardHeight, 0, true).
		AddItem(nil, 0, 1, false)
	p.layout = tview.NewFlex().AddItem(boardColumn, boardWidth, 0, true)
	if cfg.ShowSidebar {
		p.layout.AddItem(p.sidebar, sidebarWidth, 0, false)
		p.shown = true
	}
	p.root = p.layout
	return p
}

func (a *App) button(label Action, action func()) *tview.Button {
	return tview.NewButton(string(label)).SetSelectedFunc(action)
}

func (a *App) toggleSidebar(p *pane) {
	if p.layout == nil {
		return
	}
	if p.shown {
		p.layout.RemoveItem(p.sidebar)
	} else {
		p.layout.AddItem(p.sidebar, sidebarWidth, 0, false)
	}
	p.shown = !p.shown
}

func (a *App) show(i int) {
	if i < 0 || i >= len(a.panes) {
		return
	}
	a.current = i
	a.pages.SwitchToPage(strconv.Itoa(i))
	p := a.panes[i]
	if p.board != nil {
		a.SetFocus(p.board)
	}
	a.status.SetTextColor(a.Theme.Msg)
	a.status.SetText(fmt.Sprintf("[%d/%d] %s", i+1, len(a.panes), helpText))
}

// Notify shows a message in the status line
func (a *App) Notify(msg string) {
	a.status.SetTextColor(a.Theme.Error)
	a.status.SetText(msg)
}

// HandleKey is the application input capture
func (a *App) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		if len(a.panes) > 0 {
			a.show((a.current + 1) % len(a.panes))
		}
		return nil
	case tcell.KeyBacktab:
		if len(a.panes) > 0 {
			a.show((a.current + len(a.panes) - 1) % len(a.panes))
		}
		return nil
	case tcell.KeyEscape:
		a.Stop()
		return nil
	}

	v := a.Current()
	if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
		a.Stop()
		return nil
	}
	if v == nil {
		return event
	}
	switch event.Key() {
	case tcell.KeyLeft:
		v.Previous()
	case tcell.KeyRight:
		v.Next()
	case tcell.KeyHome:
		v.Reset()
	case tcell.KeyEnd:
		v.End()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'f':
			v.Flip()
		case 'r':
			v.Reset()
		case 's':
			a.toggleSidebar(a.panes[a.current])
		default:
			return event
		}
	default:
		return event
	}
	return nil
}
