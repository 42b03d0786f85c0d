package tokenize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Tokenizer splits text into sentences using the bundled English Punkt model.
// It is safe for concurrent use.
type Tokenizer struct {
	mu  sync.Mutex
	tok *sentences.DefaultSentenceTokenizer
}

// New loads the English training data and returns a ready tokenizer.
func New() (*Tokenizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english sentence model: %w", err)
	}
	return &Tokenizer{tok: tok}, nil
}

// Tokenize returns the sentences of text in order. Sentences are trimmed of
// surrounding whitespace; blank results are dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	t.mu.Lock()
	raw := t.tok.Tokenize(text)
	t.mu.Unlock()

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if text := strings.TrimSpace(s.Text); text != "" {
			out = append(out, text)
		}
	}
	return out
}
