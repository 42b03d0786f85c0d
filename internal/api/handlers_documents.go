package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/sentchunk/internal/chunker"
	"github.com/dgallion1/sentchunk/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleCreateDocument analyzes an uploaded PDF and returns its summary.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	filename, data, code, err := s.readUpload(w, r)
	if err != nil {
		jsonError(w, err.Error(), code)
		return
	}

	an, err := s.analyzer.Analyze(r.Context(), filename, data)
	if err != nil {
		jsonError(w, readErrorMessage(err), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusCreated, an.Summary())
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	an := s.lookup(w, r)
	if an == nil {
		return
	}
	writeJSON(w, http.StatusOK, an.Summary())
}

// handleSentences returns the sentences in [start, end). Without end the
// range spans DefaultPageSize sentences from start.
func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	an := s.lookup(w, r)
	if an == nil {
		return
	}

	q := r.URL.Query()
	start, err := intParam(q.Get("start"), 0)
	if err != nil {
		jsonError(w, "start must be an integer", http.StatusBadRequest)
		return
	}

	var rng chunker.Range
	if q.Get("end") == "" {
		rng, err = chunker.DefaultRange(len(an.Sentences), start, s.cfg.DefaultPageSize)
	} else {
		end, perr := intParam(q.Get("end"), 0)
		if perr != nil {
			jsonError(w, "end must be an integer", http.StatusBadRequest)
			return
		}
		rng, err = chunker.NewRange(len(an.Sentences), start, end)
	}
	switch {
	case errors.Is(err, chunker.ErrNoSentences):
		jsonError(w, "document has no sentences", http.StatusConflict)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":    an.ID,
		"start":     rng.Start,
		"end":       rng.End,
		"total":     len(an.Sentences),
		"sentences": chunker.Select(an.Sentences, rng),
	})
}

func (s *Server) handleRawText(w http.ResponseWriter, r *http.Request) {
	an := s.lookup(w, r)
	if an == nil {
		return
	}
	limit, err := intParam(r.URL.Query().Get("limit"), s.cfg.RawPreviewChars)
	if err != nil || limit <= 0 {
		jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":     an.ID,
		"characters": an.CharCount,
		"limit":      limit,
		"text":       an.RawPreview(limit),
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	an := s.lookup(w, r)
	if an == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.Sample(an))
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sentences := s.analyzer.Tokenize(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(sentences),
		"sentences": sentences,
	})
}

// lookup resolves {docID} or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *pipeline.Analysis {
	docID := chi.URLParam(r, "docID")
	an := s.analyzer.Get(docID)
	if an == nil {
		jsonError(w, "document not found", http.StatusNotFound)
	}
	return an
}

func intParam(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
