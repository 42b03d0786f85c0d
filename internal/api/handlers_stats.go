package api

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"extraction":       s.analyzer.Stats(),
		"stored_documents": s.analyzer.StoredCount(),
	})
}
