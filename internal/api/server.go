package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/riddler9999/recapflow/internal/config"
	"github.com/riddler9999/recapflow/internal/logger"
	"github.com/riddler9999/recapflow/internal/orchestrator"
)

// Server exposes the recap pipeline over HTTP: upload a movie, start
// processing, poll status, download the result.
type Server struct {
	cfg    *config.Config
	orch   orchestrator.Orchestrator
	logger logger.Logger
	// slots caps concurrently running pipelines.
	slots chan struct{}
	http  *http.Server
}

// New creates a Server bound to the configured host and port.
func New(cfg *config.Config, orch orchestrator.Orchestrator, log logger.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		orch:   orch,
		logger: log,
		slots:  make(chan struct{}, cfg.Performance.MaxConcurrent),
	}
	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
	}
	return s
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/process/{id}", s.handleProcess)
		r.Get("/status/{id}", s.handleStatus)
		r.Get("/download/{id}", s.handleDownload)
		r.Get("/script/{id}", s.handleScript)
		r.Get("/script/{id}/docx", s.handleScriptDocx)
		r.Get("/transcript/{id}", s.handleTranscript)
		r.Get("/jobs", s.handleJobs)
	})

	return r
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// startRun launches the pipeline for a job, bounded by the concurrency cap.
// The run blocks in a goroutine until a slot frees up.
func (s *Server) startRun(id string) {
	go func() {
		s.slots <- struct{}{}
		defer func() { <-s.slots }()
		s.orch.Run(context.Background(), id)
	}()
}
