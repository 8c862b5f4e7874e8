// Package server handles HTTP requests and middleware.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/woozymasta/placefetch/internal/artifact"
	"github.com/woozymasta/placefetch/internal/nominatim"
	"github.com/woozymasta/placefetch/internal/processor"
)

// HandleIndex serves the search form.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleBoundary downloads the boundary polygon of the queried place.
func (s *ServerContext) HandleBoundary(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, nominatim.Boundary, "layout-filename")
}

// HandlePosition downloads the point position of the queried place.
func (s *ServerContext) HandlePosition(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, nominatim.Position, "position-filename")
}

// handleSearch runs the pipeline with the response as download sink.
// The form names its filename field per mode, API clients use "filename".
func (s *ServerContext) handleSearch(w http.ResponseWriter, r *http.Request, mode nominatim.Mode, formField string) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := r.Form.Get("filename")
	if strings.TrimSpace(filename) == "" {
		filename = r.Form.Get(formField)
	}

	// the notifier only records, the status depends on the error kind
	var message string
	notifier := processor.NotifierFunc(func(m string) { message = m })

	p := s.Pipeline.With(artifact.HTTPSink{W: w}, notifier)
	_, err := p.Run(r.Context(), mode, processor.Input{
		Query:    r.Form.Get("q"),
		Filename: filename,
	})
	if err == nil || errors.Is(err, processor.ErrDelivery) {
		// content is already written or the client is gone
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, nominatim.ErrEmptyQuery) {
		status = http.StatusBadRequest
	}
	http.Error(w, message, status)
}
