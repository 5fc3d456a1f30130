package gui

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/chessview/pkg/annotation"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name         string
	SquareDark   tcell.Color
	SquareLight  tcell.Color
	SquareHigh   tcell.Color // last move
	SquareSelect tcell.Color // selected origin
	SquareDest   tcell.Color // legal destination of the selection
	SquareCheck  tcell.Color
	White        tcell.Color
	Black        tcell.Color
	Rank         tcell.Color
	File         tcell.Color
	MoveActive   tcell.Color
	Msg          tcell.Color
	Error        tcell.Color
	Brilliant    tcell.Color
	Great        tcell.Color
	Inaccuracy   tcell.Color
	Mistake      tcell.Color
	Blunder      tcell.Color
	Checkmate    tcell.Color
}

// AnnotationColor returns the color of a move quality marker
func (t Theme) AnnotationColor(a annotation.Annotation) tcell.Color {
	switch a {
	case annotation.Brilliant:
		return t.Brilliant
	case annotation.Great:
		return t.Great
	case annotation.Inaccuracy:
		return t.Inaccuracy
	case annotation.Mistake:
		return t.Mistake
	case annotation.Blunder:
		return t.Blunder
	case annotation.Checkmate:
		return t.Checkmate
	default:
		return tcell.ColorDefault
	}
}

// ImportTheme returns the theme whose name matches want
func ImportTheme(want string, themes []Theme) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, errors.New("theme: no theme found")
}

// ThemeByName looks up one of the board styles, falling back to brown
func ThemeByName(name string) Theme {
	t, err := ImportTheme(name, Themes)
	if err != nil {
		return ThemeBrown
	}
	return t
}

func withSquares(t Theme, name string, light, dark int32) Theme {
	t.Name = name
	t.SquareLight = tcell.NewHexColor(light)
	t.SquareDark = tcell.NewHexColor(dark)
	return t
}

// ThemeBrown is the default theme
var ThemeBrown = Theme{
	"brown",                     // Name
	tcell.NewHexColor(0xb58863), // SquareDark
	tcell.NewHexColor(0xf0d9b5), // SquareLight
	tcell.Color186,              // SquareHigh
	tcell.Color151,              // SquareSelect
	tcell.Color108,              // SquareDest
	tcell.Color210,              // SquareCheck
	tcell.Color231,              // White
	tcell.Color232,              // Black
	tcell.Color247,              // Rank
	tcell.Color247,              // File
	tcell.Color252,              // MoveActive
	tcell.Color247,              // Msg
	tcell.Color160,              // Error
	tcell.Color37,               // Brilliant
	tcell.Color33,               // Great
	tcell.Color178,              // Inaccuracy
	tcell.Color208,              // Mistake
	tcell.Color160,              // Blunder
	tcell.Color127,              // Checkmate
}

// Themes are the selectable board styles
var Themes = []Theme{
	ThemeBrown,
	withSquares(ThemeBrown, "blue", 0xdee3e6, 0x8ca2ad),
	withSquares(ThemeBrown, "green", 0xffffdd, 0x86a666),
	withSquares(ThemeBrown, "ic", 0xececec, 0xc1c18e),
	withSquares(ThemeBrown, "purple", 0x9f90b0, 0x7d4a8d),
}
