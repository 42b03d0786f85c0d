package chunker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSentences means there is nothing to select a range from.
	ErrNoSentences = errors.New("no sentences")
	// ErrInvalidRange means the bounds violate 0 <= start < end <= total.
	ErrInvalidRange = errors.New("invalid range")
)

// DefaultPageSize is how many sentences a range spans when no end is given.
const DefaultPageSize = 10

// Range is a half-open interval [Start, End) of sentence indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of sentences covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// Indexed is a sentence labeled with its position in the source list.
type Indexed struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// NewRange validates explicit bounds against a list of total sentences.
func NewRange(total, start, end int) (Range, error) {
	if total <= 0 {
		return Range{}, ErrNoSentences
	}
	if start < 0 || start >= end || end > total {
		return Range{}, fmt.Errorf("%w: [%d, %d) with %d sentences", ErrInvalidRange, start, end, total)
	}
	return Range{Start: start, End: end}, nil
}

// DefaultRange returns [start, min(start+pageSize, total)).
func DefaultRange(total, start, pageSize int) (Range, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return NewRange(total, start, min(start+pageSize, total))
}

// ClampRange forces arbitrary input into a valid range, the way numeric
// input controls bound their values: start is limited to [0, total-1] and
// end to [start+1, total]. An end <= 0 means "not set" and defaults to
// start+pageSize.
func ClampRange(total, start, end, pageSize int) (Range, error) {
	if total <= 0 {
		return Range{}, ErrNoSentences
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start = max(0, min(start, total-1))
	if end <= 0 {
		end = start + pageSize
	}
	end = max(start+1, min(end, total))
	return Range{Start: start, End: end}, nil
}

// Select returns the sentences inside r, each labeled with its index.
// Bounds outside the list are cut to fit.
func Select(sentences []string, r Range) []Indexed {
	start := max(0, r.Start)
	end := min(len(sentences), r.End)
	if start >= end {
		return []Indexed{}
	}
	out := make([]Indexed, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Indexed{Index: i, Text: sentences[i]})
	}
	return out
}

// Join concatenates sentences with single spaces.
func Join(items []Indexed) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Text
	}
	return strings.Join(parts, " ")
}

// Renumber labels sentences with fresh zero-based indices.
func Renumber(sentences []string) []Indexed {
	out := make([]Indexed, len(sentences))
	for i, s := range sentences {
		out[i] = Indexed{Index: i, Text: s}
	}
	return out
}
