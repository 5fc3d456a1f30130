package annotation

import "strings"

// Annotation is a move quality marker
type Annotation int

const (
	None Annotation = iota
	Brilliant
	Great
	Inaccuracy
	Mistake
	Blunder
	Checkmate
)

// String returns the class name of the annotation, e.g. "blunder"
func (a Annotation) String() string {
	switch a {
	case Brilliant:
		return "brilliant"
	case Great:
		return "great"
	case Inaccuracy:
		return "inaccuracy"
	case Mistake:
		return "mistake"
	case Blunder:
		return "blunder"
	case Checkmate:
		return "checkmate"
	default:
		return ""
	}
}

// Glyph returns the inline marker as written in movetext
func (a Annotation) Glyph() string {
	switch a {
	case Brilliant:
		return "!!"
	case Great:
		return "!"
	case Inaccuracy:
		return "?!"
	case Mistake:
		return "?"
	case Blunder:
		return "??"
	case Checkmate:
		return "#"
	default:
		return ""
	}
}

// Tooltip is the capitalized class name
func (a Annotation) Tooltip() string {
	s := a.String()
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FromGlyph maps an inline marker to its annotation. Unknown markers,
// including "!?", map to None.
func FromGlyph(glyph string) Annotation {
	switch glyph {
	case "!!":
		return Brilliant
	case "!":
		return Great
	case "?!":
		return Inaccuracy
	case "?":
		return Mistake
	case "??":
		return Blunder
	case "#":
		return Checkmate
	default:
		return None
	}
}

// FromNAG maps a numeric annotation glyph ("$1".."$6") to its annotation
func FromNAG(nag string) Annotation {
	switch nag {
	case "$1":
		return Great
	case "$2":
		return Mistake
	case "$3":
		return Brilliant
	case "$4":
		return Blunder
	case "$6":
		return Inaccuracy
	default:
		return None
	}
}
