package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ryanm101/giantbomb"
	"github.com/ryanm101/giantbomb/internal/catalog"
	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/metrics"
)

// Server exposes the local catalog over HTTP.
type Server struct {
	db  *catalog.DB
	mux *http.ServeMux
}

// NewServer creates a catalog server.
func NewServer(db *catalog.DB) *Server {
	s := &Server{
		db:  db,
		mux: http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/catalog", s.handleCounts)
	s.mux.HandleFunc("GET /api/catalog/{resource}", s.handleList)
	s.mux.HandleFunc("GET /api/catalog/{resource}/{id}", s.handleRecord)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.db.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": counts})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	res, ok := giantbomb.ParseResource(r.PathValue("resource"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown resource"))
		return
	}

	rows, err := s.db.List(r.Context(), string(res))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]map[string]any, len(rows))
	for i, row := range rows {
		items[i] = map[string]any{
			"id":              row.ID,
			"name":            row.Name,
			"deck":            row.Deck,
			"site_detail_url": row.SiteDetailURL,
			"image_url":       row.ImageURL,
			"fetched_at":      row.FetchedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource": res, "items": items})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	res, ok := giantbomb.ParseResource(r.PathValue("resource"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown resource"))
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	row, err := s.db.Get(r.Context(), string(res), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(row.Payload)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if err := metrics.UpdateCatalogMetrics(s.db.Conn()); err != nil {
		logging.Warn("failed to update catalog metrics", "error", err)
	}
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if err := s.db.Conn().PingContext(r.Context()); err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func handleServeCommand(ctx context.Context, args []string) int {
	addr := os.Getenv("GIANTBOMB_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--addr="); ok {
			addr = v
		}
	}

	database, err := openCatalog(ctx, "")
	if err != nil {
		PrintError("Error opening catalog: %v\n", err)
		return 1
	}
	defer func() { _ = database.Close() }()

	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(NewServer(database), "giantbomb-catalog"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	PrintInfo("Serving catalog %s on %s\n", database.Path(), addr)
	logging.Info("catalog server starting", "addr", addr, "db", database.Path())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		PrintError("Server error: %v\n", err)
		return 1
	}
	return 0
}
