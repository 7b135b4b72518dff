// Package server exposes the matcher over HTTP: POST two versions of a
// file, get the line correspondence back as JSON. The handler holds no
// state between requests, so concurrent mapping requests are independent.
package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsnanigans/linemap/internal/fixture"
	"github.com/jsnanigans/linemap/pkg/linemap"
)

// MapRequest is the body of a POST /map call.
type MapRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// MapResponse carries the full correspondence: one entry per old line in
// order (new is null for deletions), then one entry per inserted new line.
type MapResponse struct {
	Mappings []MappingEntry `json:"mappings"`
}

// MappingEntry mirrors the fixture entry shape.
type MappingEntry struct {
	Orig  *int     `json:"orig"`
	New   *int     `json:"new"`
	Score *float64 `json:"score,omitempty"`
}

// Server handles mapping requests with a fixed scoring configuration.
type Server struct {
	cfg    linemap.Config
	logger *slog.Logger
}

// New builds a Server. The configuration is validated up front so request
// handling can treat mapping errors as client errors.
func New(cfg linemap.Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/map", s.handleMap)
	return mux
}

// ListenAndServe blocks serving requests on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST is allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	oldLines := fixture.SplitLines(req.Old)
	newLines := fixture.SplitLines(req.New)

	res, err := linemap.MapLines(oldLines, newLines, s.cfg)
	if err != nil {
		http.Error(w, fmt.Sprintf("mapping failed: %v", err), http.StatusBadRequest)
		return
	}

	resp := MapResponse{Mappings: toEntries(res, len(oldLines))}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
	s.logger.Debug("mapped request",
		"old_lines", len(oldLines), "new_lines", len(newLines),
		"matches", len(res.Matches), "inserted", len(res.Inserted))
}

func toEntries(res *linemap.Result, oldLen int) []MappingEntry {
	scores := make(map[int]float64, len(res.Matches))
	for _, m := range res.Matches {
		scores[m.OldLine] = m.Score
	}

	entries := make([]MappingEntry, 0, oldLen+len(res.Inserted))
	for i := 1; i <= oldLen; i++ {
		orig := i
		entry := MappingEntry{Orig: &orig}
		if newLine := res.Mapping[i]; newLine != linemap.Deleted {
			n := newLine
			entry.New = &n
			score := scores[i]
			entry.Score = &score
		}
		entries = append(entries, entry)
	}
	for _, newLine := range res.Inserted {
		n := newLine
		entries = append(entries, MappingEntry{New: &n})
	}
	return entries
}
