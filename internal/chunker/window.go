package chunker

import "fmt"

// Default fixed sample window.
const (
	SampleStart = 58
	SampleEnd   = 68
)

// Tokenizer splits text into sentences.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Window is a fixed slice of the sentence list that gets re-tokenized.
type Window struct {
	Start int
	End   int
}

// DefaultWindow returns the 58..68 window.
func DefaultWindow() Window {
	return Window{Start: SampleStart, End: SampleEnd}
}

// WindowSample is the result of re-sampling a fixed window.
type WindowSample struct {
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Total     int       `json:"total"`
	Available bool      `json:"available"`
	Message   string    `json:"message,omitempty"`
	Skipped   string    `json:"skipped,omitempty"`
	Sentences []Indexed `json:"sentences"`
	Combined  string    `json:"combined,omitempty"`
	Rechunked []Indexed `json:"rechunked"`
}

// SampleWindow takes sentences [w.Start, w.End), joins them with single
// spaces, and re-tokenizes the joined text. When the list is shorter than
// w.End nothing is sampled and the result carries the shortfall message.
func SampleWindow(sentences []string, w Window, tok Tokenizer) WindowSample {
	out := WindowSample{
		Start:     w.Start,
		End:       w.End,
		Total:     len(sentences),
		Sentences: []Indexed{},
		Rechunked: []Indexed{},
	}

	if len(sentences) < w.End {
		out.Message = fmt.Sprintf(
			"This PDF has only %d sentences, so indices %d to %d are not fully available.",
			len(sentences), w.Start, w.End)
		out.Skipped = "Skipping Step 4 because sample sentences are not available."
		return out
	}

	out.Available = true
	out.Sentences = Select(sentences, Range{Start: w.Start, End: w.End})
	out.Combined = Join(out.Sentences)
	out.Rechunked = Renumber(tok.Tokenize(out.Combined))
	return out
}
