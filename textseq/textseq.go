// Package textseq turns text into integer symbol sequences, one symbol per
// rune, and maps sequence positions back to the text.
package textseq

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidUTF8 = errors.New("textseq: invalid UTF-8 encoding in input text")
)

type Options struct {
	CaseSensitive bool
	// SkipNormalization disables NFC normalization.
	SkipNormalization bool
}

// Text is an encoded text. Symbols[i] is the code point of the i-th rune of
// Source, which starts at byte Offsets[i].
type Text struct {
	Source  string
	Symbols []int32
	Offsets []int
}

// Encode applies the transforms selected by opts and splits the result into
// runes.
func Encode(s string, opts Options) (*Text, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	s = applyTransforms(s, opts)

	t := &Text{
		Source:  s,
		Symbols: make([]int32, 0, utf8.RuneCountInString(s)),
		Offsets: make([]int, 0, utf8.RuneCountInString(s)),
	}
	for off, r := range s {
		t.Symbols = append(t.Symbols, r)
		t.Offsets = append(t.Offsets, off)
	}
	return t, nil
}

func applyTransforms(s string, opts Options) string {
	if !opts.CaseSensitive {
		s = strings.ToLower(s)
	}
	if !opts.SkipNormalization {
		s = norm.NFC.String(s)
	}
	return s
}

// Len returns the number of symbols.
func (t *Text) Len() int { return len(t.Symbols) }

// Snippet returns up to width runes of the text starting at symbol pos, with
// line breaks and tabs shown as spaces. Positions past the end give "".
func (t *Text) Snippet(pos, width int) string {
	if pos < 0 || pos >= len(t.Symbols) || width <= 0 {
		return ""
	}
	end := len(t.Source)
	if pos+width < len(t.Offsets) {
		end = t.Offsets[pos+width]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, t.Source[t.Offsets[pos]:end])
}
