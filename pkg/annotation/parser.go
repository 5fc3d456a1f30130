package annotation

import (
	"regexp"
	"strings"
)

// A move token is preceded by the start of the text, whitespace, a move
// number dot or the end of a blanked variation. It is followed by an optional
// check/mate suffix, an optional inline marker and an optional NAG.
var tokenRe = regexp.MustCompile(
	`(?:^|[\s.)])` +
		`(O-O-O|O-O|0-0-0|0-0|[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h](?:x[a-h])?[1-8](?:=?[QRBN])?)` +
		`([+#])?` +
		`(!!|\?\?|\?!|!\?|!|\?)?` +
		`(?:\s*(\$\d+))?`)

// Token is one move found in movetext
type Token struct {
	Text       string // move text without suffix or marker, e.g. "Nf3"
	Suffix     string // "+", "#" or ""
	Marker     string // inline marker as written, e.g. "??"
	Annotation Annotation
}

// Tokenize scans the mainline of movetext and returns its move tokens in
// order. Tag pairs, comments and variations are skipped.
func Tokenize(text string) []Token {
	matches := tokenRe.FindAllStringSubmatch(mainline(text), -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tok := Token{Text: m[1], Suffix: m[2], Marker: m[3]}
		tok.Annotation = FromGlyph(tok.Marker)
		if tok.Annotation == None && m[4] != "" {
			tok.Annotation = FromNAG(m[4])
		}
		if tok.Annotation == None && tok.Suffix == "#" {
			tok.Annotation = Checkmate
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Parse returns one annotation per move token in text. It never fails: text
// without recognizable moves yields an empty slice.
func Parse(text string) []Annotation {
	tokens := Tokenize(text)
	anns := make([]Annotation, len(tokens))
	for i, tok := range tokens {
		anns[i] = tok.Annotation
	}
	return anns
}

// Bind aligns anns with a move list of length n. Only the first min(n,
// len(anns)) entries are bound, the rest are None. mismatch reports whether
// the two counts disagreed.
func Bind(n int, anns []Annotation) (bound []Annotation, mismatch bool) {
	bound = make([]Annotation, n)
	copy(bound, anns)
	return bound, n != len(anns)
}

var nagRe = regexp.MustCompile(`\$\d+`)

// Strip returns movetext the rules engine can read: tag pairs and mainline
// moves are kept, while comments, variations and NAGs are blanked out.
func Strip(text string) string {
	return nagRe.ReplaceAllString(scrub(text, true), " ")
}

// mainline blanks out everything in movetext that is not a mainline move:
// tag pairs, brace and rest-of-line comments and (nested) variations.
func mainline(text string) string {
	return scrub(text, false)
}

func scrub(text string, keepTags bool) string {
	var (
		b         strings.Builder
		depth     int
		inComment bool
		inLine    bool
		inTag     bool
		inQuote   bool
	)
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case inLine:
			if r == '\n' {
				inLine = false
				b.WriteByte('\n')
				continue
			}
		case inComment:
			if r == '}' {
				inComment = false
			}
		case inTag:
			if r == '"' {
				inQuote = !inQuote
			} else if r == ']' && !inQuote {
				inTag = false
			}
			if keepTags {
				b.WriteRune(r)
				continue
			}
		case r == '{':
			inComment = true
		case r == ';':
			inLine = true
		case r == '[' && depth == 0:
			inTag = true
			if keepTags {
				b.WriteRune(r)
				continue
			}
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}
