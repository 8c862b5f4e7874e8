package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes returns the application handler with request logging.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/boundary", s.HandleBoundary)
	mux.HandleFunc("/api/position", s.HandlePosition)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.HandleIndex)

	return RequestLogger(mux)
}
