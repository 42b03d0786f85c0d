package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/sentchunk/internal/chunker"
	"github.com/dgallion1/sentchunk/internal/pipeline"
	"github.com/dgallion1/sentchunk/internal/render"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, render.PageView{})
}

// handleUpload analyzes a PDF posted from the page form. Submitting the form
// without a file keeps the idle prompt.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	filename, data, code, err := s.readUpload(w, r)
	if errors.Is(err, errNoFile) {
		s.writePage(w, r, http.StatusOK, render.PageView{})
		return
	}
	if err != nil {
		s.writePage(w, r, code, render.PageView{Error: err.Error()})
		return
	}

	an, err := s.analyzer.Analyze(r.Context(), filename, data)
	if err != nil {
		s.writePage(w, r, http.StatusUnprocessableEntity, errorView(err))
		return
	}
	s.writeDocument(w, r, an, 0, 0)
}

// handleDocumentPage re-renders a stored analysis with a new sentence range.
// The range form sends prev_start, the start it was rendered with.
func (s *Server) handleDocumentPage(w http.ResponseWriter, r *http.Request) {
	an := s.analyzer.Get(chi.URLParam(r, "docID"))
	if an == nil {
		s.writePage(w, r, http.StatusNotFound, render.PageView{
			Error: "Document not found or expired. Please upload it again.",
		})
		return
	}
	q := r.URL.Query()
	start, end := formInt(q.Get("start")), formInt(q.Get("end"))
	// Moving start resets end to a full page from the new start.
	if prev := q.Get("prev_start"); prev != "" && formInt(prev) != start {
		end = 0
	}
	s.writeDocument(w, r, an, start, end)
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, an *pipeline.Analysis, start, end int) {
	var rng chunker.Range
	var sample chunker.WindowSample
	if len(an.Sentences) > 0 {
		var err error
		rng, err = chunker.ClampRange(len(an.Sentences), start, end, s.cfg.DefaultPageSize)
		if err != nil {
			s.writePage(w, r, http.StatusInternalServerError, errorView(err))
			return
		}
		sample = s.analyzer.Sample(an)
	}

	view, err := s.renderer.Document(an, rng, sample, s.cfg.RawPreviewChars)
	if err != nil {
		s.log.Error("build document view failed", "doc_id", an.ID, "error", err)
		s.writePage(w, r, http.StatusInternalServerError, errorView(err))
		return
	}
	s.writePage(w, r, http.StatusOK, render.PageView{Doc: view})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, code int, v render.PageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.renderer.Page(w, v); err != nil {
		s.log.Error("render page failed", "path", r.URL.Path, "error", err)
	}
}

// errorView is the page shown when a document cannot be read or displayed.
func errorView(err error) render.PageView {
	return render.PageView{Error: readErrorMessage(err)}
}

// formInt parses a numeric form value; anything unparsable counts as unset.
func formInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
