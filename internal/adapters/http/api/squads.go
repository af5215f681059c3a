// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/squadmaker/internal/domain/balance"
	"github.com/okian/squadmaker/internal/domain/types"
)

// SquadsDependencies defines the interface for building squads.
type SquadsDependencies interface {
	MakeSquads(ctx context.Context, numSquads int) (balance.Result, error)
}

// SquadsHandler handles squad building requests.
type SquadsHandler struct {
	deps SquadsDependencies
}

// NewSquadsHandler creates a new squads handler.
func NewSquadsHandler(deps SquadsDependencies) *SquadsHandler {
	return &SquadsHandler{deps: deps}
}

// HandleGetSquads handles GET /api/squads?numSquads=N requests.
func (h *SquadsHandler) HandleGetSquads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n, err := ParseNumSquads(r.URL.Query().Get(NumSquadsParam))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	res, err := h.deps.MakeSquads(r.Context(), n)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewSquadsResponse(res))
}
