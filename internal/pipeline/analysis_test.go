package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/sentchunk/internal/document"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	if ContentHashHex([]byte("aaa")) == ContentHashHex([]byte("bbb")) {
		t.Error("expected different hashes for different inputs")
	}
}

func TestNewAnalysis_DerivesCounts(t *testing.T) {
	doc := &document.Document{
		Title: "paper",
		Pages: []document.Page{
			{Number: 1, Text: "One two. Three four."},
			{Number: 2, Text: ""},
		},
	}
	an := newAnalysis("abc", "paper.pdf", doc, []string{"One two.", "Three four."})

	if an.PageCount != 2 {
		t.Errorf("expected 2 pages, got %d", an.PageCount)
	}
	if an.CharCount != len([]rune(an.FullText)) {
		t.Errorf("expected char count %d, got %d", len([]rune(an.FullText)), an.CharCount)
	}
	if an.NoText {
		t.Error("expected NoText=false")
	}

	s := an.Summary()
	if s.ID != "abc" || s.Sentences != 2 || s.Pages != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.Warning != "" {
		t.Errorf("expected no warning, got %q", s.Warning)
	}
}

func TestSummary_NoTextWarning(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{{Number: 1}}}
	an := newAnalysis("empty", "scan.pdf", doc, []string{})

	s := an.Summary()
	if !s.NoText {
		t.Error("expected NoText=true")
	}
	if s.Warning != NoTextWarning {
		t.Errorf("expected warning %q, got %q", NoTextWarning, s.Warning)
	}
	if s.Characters != 0 || s.Sentences != 0 {
		t.Errorf("expected zero counts, got chars=%d sentences=%d", s.Characters, s.Sentences)
	}
}

func TestRawPreview(t *testing.T) {
	an := &Analysis{FullText: strings.Repeat("é", 30)}
	if got := an.RawPreview(10); len([]rune(got)) != 10 {
		t.Errorf("expected 10 characters, got %d", len([]rune(got)))
	}
	if got := an.RawPreview(100); got != an.FullText {
		t.Errorf("expected full text when shorter than limit")
	}
	if got := an.RawPreview(0); got != "" {
		t.Errorf("expected empty preview, got %q", got)
	}
}

func TestStore_PutGet(t *testing.T) {
	store := NewStore(time.Hour)
	store.Put(&Analysis{ID: "doc-1", accessedAt: time.Now()})

	got := store.Get("doc-1")
	if got == nil {
		t.Fatal("expected to get analysis back")
	}
	if got.ID != "doc-1" {
		t.Errorf("expected ID %q, got %q", "doc-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored analysis, got %d", store.Len())
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing analysis")
	}
}

func TestStore_GetRefreshesAccess(t *testing.T) {
	store := NewStore(time.Hour)
	old := time.Now().Add(-30 * time.Minute)
	store.Put(&Analysis{ID: "doc", accessedAt: old})

	store.Get("doc")
	if !store.Get("doc").AccessedAt().After(old) {
		t.Error("expected Get to refresh access time")
	}
}

func TestStore_TTLCleanup(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	store.Put(&Analysis{ID: "old", accessedAt: time.Now()})

	time.Sleep(100 * time.Millisecond)

	store.Put(&Analysis{ID: "new", accessedAt: time.Now()})

	if removed := store.Cleanup(); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if store.Get("old") != nil {
		t.Error("expected expired analysis to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh analysis to survive cleanup")
	}
}

func TestStore_CleanupEmpty(t *testing.T) {
	store := NewStore(time.Hour)
	if removed := store.Cleanup(); removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}
