package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/aretw0/goap"
	"github.com/aretw0/goap/pkg/domain"
	"github.com/aretw0/goap/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// TopicSteps carries one event per search step of every run.
	TopicSteps = "steps"
	// TopicRuns carries solved and failed run events.
	TopicRuns = "runs"
	// TopicReload carries catalogue change notifications.
	TopicReload = "reload"
)

// PlanRequest is the body of POST /plan. States are plain objects of numbers.
type PlanRequest struct {
	Start domain.State `json:"start"`
	Goal  domain.State `json:"goal"`
}

// PlanResponse is returned by POST /plan.
type PlanResponse struct {
	Found   bool        `json:"found"`
	Plan    domain.Plan `json:"plan"`
	Actions []string    `json:"actions"`
	Error   string      `json:"error,omitempty"`
}

// ActionResponse describes one catalogue entry in GET /actions.
type ActionResponse struct {
	Key           string             `json:"key"`
	Cost          float64            `json:"cost"`
	Preconditions map[string]float64 `json:"preconditions"`
	Effects       map[string]float64 `json:"effects"`
}

// Server serves a planner over HTTP. The planner can be swapped while serving.
type Server struct {
	planner atomic.Pointer[plannerBox]
	Streams *StreamManager
	logger  *slog.Logger
	metrics http.Handler
}

type plannerBox struct {
	ports.Planner
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts a metrics handler (e.g. promhttp.Handler()) on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares an existing stream manager, e.g. one whose hooks were
// registered on the planner before the server was built.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		if sm != nil {
			s.Streams = sm
		}
	}
}

// NewServer creates a server around planner.
func NewServer(planner ports.Planner, opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
		s.Streams.logger = s.logger
	}
	s.SetPlanner(planner)
	return s
}

// SetPlanner replaces the planner for subsequent requests and notifies reload subscribers.
func (s *Server) SetPlanner(p ports.Planner) {
	if old := s.planner.Swap(&plannerBox{p}); old != nil {
		s.Streams.Broadcast(TopicReload, `{"type":"reload"}`)
	}
}

// Planner returns the planner currently serving requests.
func (s *Server) Planner() ports.Planner {
	return s.planner.Load().Planner
}

// Hooks returns lifecycle hooks that publish run events to SSE subscribers.
// Register them on the planner to stream its progress.
func (s *Server) Hooks() domain.LifecycleHooks {
	return s.Streams.Hooks()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/plan", s.FindPlan)
	r.Get("/actions", s.ListActions)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

// NewHandler creates a new HTTP handler for the planner.
func NewHandler(planner ports.Planner, opts ...Option) http.Handler {
	return NewServer(planner, opts...).Handler()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FindPlan handles the POST /plan request.
func (s *Server) FindPlan(w http.ResponseWriter, r *http.Request) {
	var body PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("FindPlan: Invalid request body", "error", err)
		return
	}

	plan, err := s.Planner().FindPlan(r.Context(), body.Start, body.Goal)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, PlanResponse{Found: true, Plan: plan, Actions: plan.Path.Actions()}, s.logger)
	case errors.Is(err, domain.ErrNoPath):
		writeJSON(w, http.StatusUnprocessableEntity, PlanResponse{Plan: domain.NoPlan(), Actions: []string{}, Error: err.Error()}, s.logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, fmt.Sprintf("Plan canceled: %v", err), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("Plan error: %v", err), http.StatusInternalServerError)
		s.logger.Error("FindPlan failed", "error", err)
	}
}

// ListActions handles the GET /actions request.
func (s *Server) ListActions(w http.ResponseWriter, r *http.Request) {
	c := s.Planner().Catalogue()
	resp := make([]ActionResponse, 0, len(c))
	for _, key := range c.Keys() {
		a := c[key]
		resp = append(resp, ActionResponse{
			Key:           a.Key,
			Cost:          a.Cost,
			Preconditions: a.Preconditions.Values(),
			Effects:       a.Effects.Values(),
		})
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":     "goap-http",
		"version": strings.TrimSpace(goap.Version),
		"actions": len(s.Planner().Catalogue()),
	}, s.logger)
}

// SubscribeEvents handles the GET /events request (SSE).
// The topic query parameter selects steps, runs or reload (default runs).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = TopicRuns
	}
	switch topic {
	case TopicSteps, TopicRuns, TopicReload:
	default:
		http.Error(w, fmt.Sprintf("Unknown topic %q", topic), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected", "topic", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", topic, msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
