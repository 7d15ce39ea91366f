// Package httpapi exposes the engine over a small JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Engine defines the interface the HTTP server needs from the core.
type Engine interface {
	ParseToken(text string) (token.Token, error)
	ValidateOperator(app domain.Application, history domain.History, state domain.ScalarStateVector) error
	SelectNextOperator(sel domain.Selection) (domain.Decision, error)
	StartSession(ctx context.Context, id, scale string) (*domain.Session, error)
	Step(ctx context.Context, id string, inputs int) (*domain.Session, *domain.Decision, error)
	Sessions(ctx context.Context) ([]string, error)
	Describe(text string) (catalog.Entry, error)
}

// Server wires the engine into HTTP handlers.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	metrics *metrics
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	s := &Server{
		engine:  engine,
		logger:  logger,
		metrics: newMetrics(),
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Post("/parse", s.parse)
	r.Post("/validate", s.validate)
	r.Post("/decide", s.decide)
	r.Post("/step", s.step)
	r.Post("/sessions", s.startSession)
	r.Get("/sessions", s.listSessions)
	r.Get("/catalog/{token}", s.describe)
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// tokenDTO is the wire shape of a parsed token.
type tokenDTO struct {
	Field     string `json:"field"`
	Machine   string `json:"machine"`
	Intent    string `json:"intent"`
	Truth     string `json:"truth"`
	Tier      int    `json:"tier"`
	Canonical string `json:"canonical"`
}

func tokenToDTO(t token.Token) tokenDTO {
	return tokenDTO{
		Field:     string(t.Field),
		Machine:   string(t.Machine),
		Intent:    t.Intent,
		Truth:     string(t.Truth),
		Tier:      t.Tier,
		Canonical: t.String(),
	}
}

// parse handles POST /parse.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	parsed, err := s.engine.ParseToken(body.Text)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tokenToDTO(parsed))
}

// validate handles POST /validate. Violations are results, not server
// errors: the response is always 200 with a legal flag.
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Application domain.Application       `json:"application"`
		History     domain.History           `json:"history"`
		State       domain.ScalarStateVector `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := map[string]any{"legal": true}
	if err := s.engine.ValidateOperator(body.Application, body.History, body.State); err != nil {
		resp["legal"] = false
		resp["violation"] = err.Error()
		var lv *domain.LegalityViolation
		if errors.As(err, &lv) {
			resp["code"] = lv.Code
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// decide handles POST /decide.
func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	var sel domain.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	decision, err := s.engine.SelectNextOperator(sel)
	if err != nil {
		if errors.Is(err, domain.ErrNoLegalOperator) {
			s.metrics.rejected()
			s.writeError(w, http.StatusConflict, err)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.metrics.observe(string(decision.Operator), chosenCost(decision))
	s.writeJSON(w, http.StatusOK, decision)
}

// step handles POST /step: advance a persisted session by one operator.
func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID  string `json:"session_id"`
		InputCount int    `json:"input_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	session, decision, err := s.engine.Step(r.Context(), body.SessionID, body.InputCount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			s.writeError(w, http.StatusNotFound, err)
		case errors.Is(err, domain.ErrNoLegalOperator):
			s.metrics.rejected()
			s.writeError(w, http.StatusConflict, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.metrics.observe(string(decision.Operator), chosenCost(*decision))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session":  session,
		"decision": decision,
	})
}

// startSession handles POST /sessions.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    string `json:"id"`
		Scale string `json:"scale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.ID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("id is required"))
		return
	}

	session, err := s.engine.StartSession(r.Context(), body.ID, body.Scale)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, session)
}

// listSessions handles GET /sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

// describe handles GET /catalog/{token}.
func (s *Server) describe(w http.ResponseWriter, r *http.Request) {
	text := chi.URLParam(r, "token")

	entry, err := s.engine.Describe(text)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// chosenCost finds the selected operator's cost in the candidate table.
func chosenCost(d domain.Decision) float64 {
	for _, c := range d.Candidates {
		if c.Operator == d.Operator && c.Rejected == "" {
			return c.Cost
		}
	}
	return 0
}
