// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/squadmaker/internal/domain/model"
	"github.com/okian/squadmaker/internal/domain/types"
)

// PlayersDependencies defines the interface for listing players.
type PlayersDependencies interface {
	Players(ctx context.Context) ([]*model.Player, error)
}

// PlayersHandler handles player listing requests.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayers handles GET /api/players requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players, err := h.deps.Players(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.PlayersResponse{Players: types.NewPlayers(players)})
}
