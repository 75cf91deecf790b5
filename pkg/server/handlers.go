package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/httputil"
	"github.com/matzehuels/structviz/pkg/render/nodelink"
	"github.com/matzehuels/structviz/pkg/script"
	"github.com/matzehuels/structviz/pkg/session"
)

var writeError = httputil.Error

// Content types per export format.
var contentTypes = map[string]string{
	"svg": "image/svg+xml",
	"dot": "text/vnd.graphviz; charset=utf-8",
	"png": "image/png",
	"pdf": "application/pdf",
}

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

type sessionResponse struct {
	ID       string            `json:"id"`
	Active   session.Structure `json:"active"`
	Messages []session.Message `json:"messages"`
}

type actionResponse struct {
	Active  session.Structure     `json:"active"`
	Message *session.Message      `json:"message,omitempty"`
	Search  *session.SearchResult `json:"search,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ready := s.module != nil && s.module.Ready()
	status := http.StatusOK
	resp := healthResponse{Status: "ok", Ready: ready}
	if !ready {
		status = http.StatusServiceUnavailable
		resp.Status = "loading"
	}
	httputil.JSON(w, status, resp)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := session.New(s.module, s.sessionOpts...)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		sess.Close()
		writeError(w, err)
		return
	}
	s.logger.Info("session created", "id", sess.ID)
	httputil.JSON(w, http.StatusCreated, sessionResponse{
		ID:       sess.ID,
		Active:   sess.Active(),
		Messages: sess.Messages(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("session closed", "id", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, sessionFrom(r).Messages())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	var step script.Step
	if err := httputil.Decode(r, &step); err != nil {
		writeError(w, err)
		return
	}
	// Validate normalizes the structure and action names in place.
	if err := step.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := script.Apply(r.Context(), sess, step); err != nil {
		writeError(w, err)
		return
	}

	resp := actionResponse{Active: sess.Active()}
	if msg, ok := sess.LastMessage(); ok {
		resp.Message = &msg
	}
	if step.Structure == string(session.Hash) && step.Action == "search" {
		resp.Search = sess.LastSearch()
	}
	httputil.JSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "structure"), ".svg")
	structure, err := session.ParseStructure(name)
	if err != nil {
		writeError(w, err)
		return
	}

	frame, err := s.renderer.RenderStructure(r.Context(), sessionFrom(r), structure)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes["svg"])
	w.Header().Set("X-Cache", cacheStatus(frame.Cached))
	if frame.Degraded != nil {
		w.Header().Set("X-Frame-Degraded", errors.UserMessage(frame.Degraded))
	}
	_, _ = w.Write(frame.SVG)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "svg"
	}

	hl, _ := sess.Highlight()
	opts := nodelink.Options{
		Highlight: hl,
		Theme:     s.renderer.Theme,
		Engine:    r.URL.Query().Get("engine"),
	}
	data, hit, err := s.exporter.Export(r.Context(), sess.Topology(), opts, format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
