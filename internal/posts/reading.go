package posts

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// DefaultWordsPerMinute is the reading speed assumed when none is
// configured.
const DefaultWordsPerMinute = 200

// CountWords returns the number of words in the rendered text of a
// markdown body. Counting happens over the parsed syntax tree so markup
// (emphasis markers, link targets, heading prefixes) does not inflate the
// total; code block content counts, since readers read it.
func CountWords(source []byte) int {
	engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := engine.Parser().Parse(text.NewReader(source))

	words := 0
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := node.(type) {
		case *ast.Text:
			words += len(strings.Fields(string(typed.Segment.Value(source))))
		case *ast.String:
			words += len(strings.Fields(string(typed.Value)))
		case *ast.AutoLink:
			words += len(strings.Fields(string(typed.Label(source))))
		case *ast.FencedCodeBlock:
			words += countLineWords(typed.Lines(), source)
		case *ast.CodeBlock:
			words += countLineWords(typed.Lines(), source)
		}
		return ast.WalkContinue, nil
	})
	return words
}

func countLineWords(lines *text.Segments, source []byte) int {
	total := 0
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		total += len(strings.Fields(string(line.Value(source))))
	}
	return total
}

// ReadingTime estimates the minutes needed to read a body with the given
// word count. The estimate is strictly increasing in word count and always
// positive; empty bodies count as a single word.
func ReadingTime(words int, wordsPerMinute int) float64 {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	if words < 1 {
		words = 1
	}
	return float64(words) / float64(wordsPerMinute)
}
