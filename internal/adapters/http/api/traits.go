package api

import (
	"context"
	"net/http"

	"github.com/okian/synergy/internal/domain/types"
	"github.com/okian/synergy/pkg/logger"
)

// TraitsDependencies defines the interface for trait table lookups.
type TraitsDependencies interface {
	Traits(ctx context.Context, mode string) (map[int]types.Trait, error)
}

// TraitsHandler handles trait table requests.
type TraitsHandler struct {
	deps   TraitsDependencies
	logger logger.Logger
}

// NewTraitsHandler creates a new traits handler.
func NewTraitsHandler(deps TraitsDependencies, l logger.Logger) *TraitsHandler {
	return &TraitsHandler{deps: deps, logger: l}
}

// HandleGetTraits handles GET /traits?augment= requests.
func (h *TraitsHandler) HandleGetTraits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	traits, err := h.deps.Traits(r.Context(), r.URL.Query().Get("augment"))
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, traits)
}
