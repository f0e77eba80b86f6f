package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/nsdom/internal/errors"
	"github.com/vango-dev/nsdom/pkg/vdom"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	if s.config.MetricsHandler != nil {
		r.Handle(s.config.MetricsPath, s.config.MetricsHandler)
	}

	r.Route("/containers", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/", s.handleRender)
			r.Delete("/", s.handleDelete)
			r.Get("/ws", s.handleStream)
		})
	})
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"containers": s.Containers()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	markup, root, err := s.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"container": id,
		"markup":    markup,
		"root":      root,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		s.writeError(w, errors.New("E160").Wrap(err))
		return
	}
	node, err := vdom.Unmarshal(body)
	if err != nil {
		s.writeError(w, errors.New("E160").
			WithSuggestion(`Send a vnode such as {"tag": "svg", "attrs": {"width": 10}} or null`).
			Wrap(err))
		return
	}

	res, err := s.Render(r.Context(), id, node)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.lookup(id); !ok {
		s.writeError(w, errors.New("E161").WithDetailf("container %q", id))
		return
	}
	s.hub.Serve(w, r, id)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case "E160":
		return http.StatusBadRequest
	case "E161":
		return http.StatusNotFound
	case "E122":
		return http.StatusConflict
	case "E100", "E101", "E102":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	e := errors.FromError(err, "E120")
	status := statusFor(e.Code)
	if status >= 500 {
		s.logger.Error("request failed", "code", e.Code, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, e.FormatJSON())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
