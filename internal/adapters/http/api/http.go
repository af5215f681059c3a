// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/model"
)

// NumSquadsParam is the query parameter carrying the requested squad count.
const NumSquadsParam = "numSquads"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Players returns all players, highest total rating first.
	Players(ctx context.Context) ([]*model.Player, error)
	// MakeSquads balances players into numSquads squads.
	MakeSquads(ctx context.Context, numSquads int) (balance.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	squadsHandler  *SquadsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		playersHandler: NewPlayersHandler(deps),
		squadsHandler:  NewSquadsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/api/squads", MetricsMiddleware(s.squadsHandler.HandleGetSquads, "squads"))
}

// ParseNumSquads reads the squad count typed by a user. Empty and non-integer
// values are invalid requests; range checks are left to the balancer.
func ParseNumSquads(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: you must enter the number of squads to make", balance.ErrInvalidRequest)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' is not a valid number of squads", balance.ErrInvalidRequest, value)
	}
	return n, nil
}

// UserMessage strips the error kind prefix from an invalid request so it can
// be shown to a user.
func UserMessage(err error) string {
	msg := err.Error()
	return strings.TrimPrefix(msg, balance.ErrInvalidRequest.Error()+": ")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps invalid requests to 400 and hides everything else
// behind a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, balance.ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, "invalid_request", errors.New(UserMessage(err)))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", nil)
}
