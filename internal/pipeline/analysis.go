package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/sentchunk/internal/chunker"
	"github.com/dgallion1/sentchunk/internal/document"
)

// Analysis is the extracted and tokenized form of one uploaded PDF.
// Fields are set once by the Analyzer and not modified afterwards.
type Analysis struct {
	ID       string
	Filename string
	Title    string

	PageCount int
	FullText  string
	CharCount int
	Sentences []string
	NoText    bool
	Tokens    int

	ExtractDuration time.Duration
	CreatedAt       time.Time

	mu         sync.Mutex
	accessedAt time.Time
}

func newAnalysis(id, filename string, doc *document.Document, sentences []string) *Analysis {
	full := doc.FullText()
	now := time.Now()
	return &Analysis{
		ID:         id,
		Filename:   filename,
		Title:      doc.Title,
		PageCount:  doc.PageCount(),
		FullText:   full,
		CharCount:  doc.CharCount(),
		Sentences:  sentences,
		NoText:     doc.Empty(),
		Tokens:     chunker.EstimateTokens(full),
		CreatedAt:  now,
		accessedAt: now,
	}
}

// renamed returns a copy of a for the same content uploaded under another
// name. Extracted text and sentences are shared with a.
func (a *Analysis) renamed(filename, title string) *Analysis {
	return &Analysis{
		ID:              a.ID,
		Filename:        filename,
		Title:           title,
		PageCount:       a.PageCount,
		FullText:        a.FullText,
		CharCount:       a.CharCount,
		Sentences:       a.Sentences,
		NoText:          a.NoText,
		Tokens:          a.Tokens,
		ExtractDuration: a.ExtractDuration,
		CreatedAt:       a.CreatedAt,
		accessedAt:      time.Now(),
	}
}

// Touch records an access, extending the analysis lifetime.
func (a *Analysis) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessedAt = time.Now()
}

// AccessedAt returns the last access time.
func (a *Analysis) AccessedAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accessedAt
}

// RawPreview returns at most n characters from the start of the full text.
func (a *Analysis) RawPreview(n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(a.FullText)
	if len(runes) <= n {
		return a.FullText
	}
	return string(runes[:n])
}

// Summary is a JSON-safe overview of an analysis.
type Summary struct {
	ID         string `json:"doc_id"`
	Filename   string `json:"filename"`
	Title      string `json:"title"`
	Pages      int    `json:"pages"`
	Characters int    `json:"characters"`
	Sentences  int    `json:"sentences"`
	Tokens     int    `json:"tokens"`
	NoText     bool   `json:"no_text"`
	Warning    string `json:"warning,omitempty"`
	ExtractMs  int64  `json:"extract_ms"`
}

// NoTextWarning is shown when a PDF has no extractable text.
const NoTextWarning = "No text could be extracted from this PDF."

// Summary returns a JSON-safe copy of the analysis overview.
func (a *Analysis) Summary() Summary {
	s := Summary{
		ID:         a.ID,
		Filename:   a.Filename,
		Title:      a.Title,
		Pages:      a.PageCount,
		Characters: a.CharCount,
		Sentences:  len(a.Sentences),
		Tokens:     a.Tokens,
		NoText:     a.NoText,
		ExtractMs:  a.ExtractDuration.Milliseconds(),
	}
	if a.NoText {
		s.Warning = NoTextWarning
	}
	return s
}

// Store is a thread-safe in-memory analysis registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	analyses map[string]*Analysis
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		analyses: make(map[string]*Analysis),
		ttl:      ttl,
	}
}

func (s *Store) Put(a *Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
}

// Get returns the analysis for id, or nil. A hit refreshes its access time.
func (s *Store) Get(id string) *Analysis {
	s.mu.Lock()
	a := s.analyses[id]
	s.mu.Unlock()
	if a != nil {
		a.Touch()
	}
	return a
}

// Len returns the number of stored analyses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.analyses)
}

// Cleanup removes analyses not accessed within the TTL.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, a := range s.analyses {
		if now.Sub(a.AccessedAt()) > s.ttl {
			delete(s.analyses, id)
			removed++
		}
	}
	return removed
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
