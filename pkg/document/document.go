// Package document finds chess code blocks in a markdown document
package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/qnkhuat/chessview/pkg/config"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Kind is the info string of a fenced chess block
type Kind string

const (
	KindChess Kind = "chess"     // YAML options
	KindPGN   Kind = "chess-pgn" // raw movetext
	KindFEN   Kind = "chess-fen" // raw position
)

// Block is one fenced chess code block
type Block struct {
	Kind   Kind
	Source string
	Line   int // line of the opening fence, 1-based
}

// Config builds the block configuration over settings
func (b Block) Config(settings config.Settings) (config.Config, error) {
	switch b.Kind {
	case KindPGN:
		return config.FromPGN(settings, b.Source), nil
	case KindFEN:
		return config.FromFEN(settings, b.Source), nil
	default:
		return config.Parse(settings, b.Source)
	}
}

// Title is a short description of the block for the view header
func (b Block) Title() string {
	return fmt.Sprintf("%s:%d", b.Kind, b.Line)
}

// Parse returns the chess blocks of a markdown document in order. An
// unterminated block runs to the end of the document.
func Parse(text string) []Block {
	src := []byte(text)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	var blocks []Block
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := Kind(fenced.Language(src))
		switch kind {
		case KindChess, KindPGN, KindFEN:
		default:
			return ast.WalkSkipChildren, nil
		}

		var buf bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		blocks = append(blocks, Block{
			Kind:   kind,
			Source: strings.TrimSuffix(buf.String(), "\n"),
			Line:   bytes.Count(src[:fenced.Info.Segment.Start], []byte("\n")) + 1,
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Load reads and parses the document at path
func Load(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return Parse(string(data)), nil
}
