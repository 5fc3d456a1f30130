package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/qnkhuat/chessview/pkg"
	"github.com/qnkhuat/chessview/pkg/config"
	"github.com/qnkhuat/chessview/pkg/document"
	"github.com/qnkhuat/chessview/pkg/gui"
	"golang.org/x/term"
)

const reloadDebounce = 200 * time.Millisecond

var errColor = color.New(color.FgRed)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	orientation := flag.String("orientation", "", "default board orientation, white or black")
	viewOnly := flag.Bool("view-only", false, "do not accept moves on the board")
	noAnnotations := flag.Bool("no-annotations", false, "hide move quality annotations")
	boardStyle := flag.String("board-style", "", "board style: brown, blue, green, ic or purple")
	noCoords := flag.Bool("no-coords", false, "hide rank and file labels")
	noSidebar := flag.Bool("no-sidebar", false, "start with the move list hidden")
	watch := flag.Bool("watch", false, "reload when the document changes")
	printMode := flag.Bool("print", false, "print the boards instead of opening the viewer")
	statePath := flag.String("state", "", "file keeping the cursor of every board between runs")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] DOCUMENT\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	prefix := "CHESSVIEW: "
	if session := os.Getenv("CHESSVIEW_SESSION"); session != "" {
		prefix = fmt.Sprintf("CHESSVIEW %s: ", session)
	}
	pkg.InitLog(*logPath, prefix)

	settings := config.DefaultSettings
	if *orientation != "" {
		settings.Orientation = *orientation
	}
	if *boardStyle != "" {
		settings.BoardStyle = *boardStyle
	}
	settings.ViewOnly = *viewOnly
	settings.ShowAnnotations = !*noAnnotations
	settings.EnableCoordinates = !*noCoords
	settings.ShowSidebar = !*noSidebar

	blocks, err := document.Load(path)
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	state := pkg.DocumentState{Path: path}
	if *statePath != "" {
		if state, err = pkg.LoadState(*statePath); err != nil {
			log.Println(err)
		}
	}

	if *printMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		if failed := printDocument(os.Stdout, blocks, settings, state); failed > 0 {
			os.Exit(1)
		}
		return
	}

	log.Printf("Opening %s with %d boards", path, len(blocks))
	app := gui.NewApp(settings)
	app.Load(blocks, state)

	if *watch {
		w, err := document.Watch(path, reloadDebounce, func() {
			app.QueueUpdateDraw(func() { reload(app, path) })
		})
		if err != nil {
			log.Println(err)
		} else {
			defer w.Close()
		}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		app.Stop()
	}()

	if err := app.EnableMouse(true).Run(); err != nil {
		log.Println(err)
	}
	if *statePath != "" {
		if err := pkg.SaveState(*statePath, app.State(path)); err != nil {
			log.Println(err)
		}
	}
	app.Close()
}

// reload rebuilds every board from the document, keeping the cursors of the
// games that did not change
func reload(app *gui.App, path string) {
	blocks, err := document.Load(path)
	if err != nil {
		log.Println(err)
		app.Notify(err.Error())
		return
	}
	log.Printf("Reloading %s", path)
	app.Load(blocks, app.State(path))
}

// printDocument writes every board of the document as text and returns the
// number of blocks that failed to load
func printDocument(w io.Writer, blocks []document.Block, settings config.Settings, state pkg.DocumentState) int {
	failed := 0
	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (line %d)\n", block.Title(), block.Line)

		cfg, err := block.Config(settings)
		board := &pkg.TextBoard{}
		var v *pkg.View
		if err == nil {
			v, err = pkg.NewView(cfg, board)
		}
		if err != nil {
			errColor.Fprintln(w, err)
			failed++
			continue
		}
		if s, ok := state.Find(cfg.Source()); ok {
			v.Restore(s)
		}

		(&pkg.Printer{Out: w}).RedrawMoveList(v.MoveList())
		if err := board.Print(w); err != nil {
			errColor.Fprintln(w, err)
			failed++
		}
		if r := v.Result(); r != "" {
			fmt.Fprintln(w, r)
		}
		v.Close()
	}
	return failed
}
