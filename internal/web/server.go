// Package web serves the quiz as HTML pages and a small JSON scoring API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/radar"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/store"
)

// Server holds the dependencies of every handler.
type Server struct {
	cfg      Config
	sessions *SessionManager
	results  store.ResultRepo
	insights *insight.Service
	pages    *template.Template
	svg      radar.SVGOptions
}

// NewServer creates a server. results may be nil, in which case submitted
// quizzes are not recorded. insights may be nil, in which case only
// fallback talent reports are served.
func NewServer(cfg Config, results store.ResultRepo, insights *insight.Service) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	if insights == nil {
		insights = insight.NewService(nil, insight.DefaultConfig())
	}
	return &Server{
		cfg:      cfg,
		sessions: NewSessionManager(cfg.SessionTTL),
		results:  results,
		insights: insights,
		pages:    pages,
		svg:      radar.DefaultSVGOptions(),
	}, nil
}

// Sessions exposes the in-memory session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
	})

	r.Get("/", s.handleIndex)
	r.Post("/quiz", s.handleStart)
	r.Get("/form", s.handleForm)
	r.Post("/form", s.handleFormSubmit)
	r.Route("/quiz/{id}", func(r chi.Router) {
		r.Get("/", s.handleQuestion)
		r.Post("/answer", s.handleAnswer)
		r.Post("/previous", s.handlePrevious)
		r.Post("/jump", s.handleJump)
		r.Post("/restart", s.handleRestart)
		r.Get("/result", s.handleResult)
		r.Get("/chart.svg", s.handleChart)
		r.Get("/insight", s.handleInsight)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
		r.Get("/questions", s.handleQuestions)
		r.Post("/score", s.handleScore)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("talentquiz listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// record stores a freshly submitted quiz. Failures are logged, not shown to
// the respondent.
func (s *Server) record(ctx context.Context, st session.State, respondent string) {
	if s.results == nil {
		return
	}
	res := store.NewResult(st, respondent)
	if err := s.results.Save(ctx, res); err != nil {
		log.Printf("warning: failed to save result for session %s: %v", st.ID, err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidOption), errors.Is(err, session.ErrInvalidIndex):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnanswered),
		errors.Is(err, session.ErrNotAnswering),
		errors.Is(err, session.ErrNotSubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
