// Package server implements the HTTP preview server of slashdoc serve.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tliron/commonlog"
	"go.dw1.io/slashdoc"
)

var log = commonlog.GetLogger("slashdoc.server")

// LoadFunc produces a fresh document. It is called once per request so that
// edits to the inputs show up on reload.
type LoadFunc func() (*slashdoc.Document, error)

// Server serves the rendered documentation of a set of inputs.
type Server struct {
	load LoadFunc
}

// New creates a preview server backed by load.
func New(load LoadFunc) *Server {
	return &Server{load: load}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.RegisterRoutes(router)

	return router
}

// RegisterRoutes registers the preview routes on router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", s.handleHTML).Methods("GET")
	router.HandleFunc("/markdown", s.handleMarkdown).Methods("GET")
	router.HandleFunc("/nodes", s.handleNodes).Methods("GET")
	router.HandleFunc("/nodes/{name}", s.handleNode).Methods("GET")
}

// handleHTML serves the full documentation page
func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, doc.HTML())
}

// handleMarkdown serves the Markdown rendering
func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, doc.Markdown())
}

// handleNodes lists the top-level nodes
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

// handleNode serves a single node by name
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.document(w)
	if !ok {
		return
	}

	name := mux.Vars(r)["name"]

	node, found := doc.Index().Lookup(name)
	if !found {
		s.writeError(w, http.StatusNotFound, "Unknown node "+name, nil)
		return
	}

	s.writeJSON(w, http.StatusOK, node)
}

// document loads the inputs, answering the request itself on failure.
func (s *Server) document(w http.ResponseWriter) (*slashdoc.Document, bool) {
	doc, err := s.load()
	if err == nil {
		return doc, true
	}

	var serr *slashdoc.SyntaxError
	if errors.As(err, &serr) {
		log.Warningf("%s", err)
		s.writeError(w, http.StatusUnprocessableEntity, "Syntax error", err)

		return nil, false
	}

	log.Errorf("load failed: %s", err)
	s.writeError(w, http.StatusInternalServerError, "Failed to load documentation", err)

	return nil, false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]any{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	s.writeJSON(w, status, response)
}
