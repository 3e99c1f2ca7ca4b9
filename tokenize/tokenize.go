// Package tokenize provides the tokenizer port contract and a reference
// implementation, used by tests and by any embedder that has no tokenizer
// of its own to inject.
package tokenize

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Word is one token the tokenizer emits: text, rank, and the byte offset
// of its first rune in the source string.
type Word struct {
	Text     string
	Rank     int64
	Position int
}

// Tokenizer is the port the planner calls through; the core treats it as
// a pure function and injects a concrete implementation.
type Tokenizer interface {
	Tokenize(text string) ([]Word, error)
}

// Default is a reference Tokenizer: splits on Unicode letter/number
// boundaries, folding width (fullwidth/halfwidth) and case so that
// visually or casewise equivalent tokens compare equal.
type Default struct{}

// NewDefault returns the reference Tokenizer.
func NewDefault() *Default {
	return &Default{}
}

var foldCaser = cases.Fold()

func (d *Default) Tokenize(text string) ([]Word, error) {
	runes := []rune(text)
	var words []Word

	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		norm := normalize(string(runes[start:i]))
		if norm == "" {
			continue
		}
		words = append(words, Word{Text: norm, Rank: 1, Position: len(string(runes[:start]))})
	}
	return words, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func normalize(s string) string {
	return foldCaser.String(width.Fold.String(s))
}
