package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/synergy/internal/domain/types"
	"github.com/okian/synergy/pkg/logger"
)

// SolveDependencies defines the interface for team searches.
type SolveDependencies interface {
	Solve(ctx context.Context, req types.SolveRequest) (types.Team, error)
}

// SolveHandler handles solve requests.
type SolveHandler struct {
	deps   SolveDependencies
	logger logger.Logger
}

// NewSolveHandler creates a new solve handler.
func NewSolveHandler(deps SolveDependencies, l logger.Logger) *SolveHandler {
	return &SolveHandler{deps: deps, logger: l}
}

// HandleSolve handles GET /solve/{n}?high_tier=&augment=&tier_coefficient=.
// n is clamped to [1, 11] by the service.
func (h *SolveHandler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	req, err := parseSolveRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	team, err := h.deps.Solve(r.Context(), req)
	if err != nil {
		writeFailure(r.Context(), h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func parseSolveRequest(r *http.Request) (types.SolveRequest, error) {
	path := strings.TrimPrefix(r.URL.Path, "/solve/")
	if path == "" || strings.Contains(path, "/") {
		return types.SolveRequest{}, WrapKind("parse path", ErrBadRequest, nil)
	}
	n, err := strconv.Atoi(path)
	if err != nil {
		return types.SolveRequest{}, WrapKind("parse team size", ErrBadRequest, err)
	}
	req := types.NewSolveRequest(n)

	q := r.URL.Query()
	if v := q.Get("high_tier"); v != "" {
		if req.HighTier, err = strconv.ParseBool(v); err != nil {
			return types.SolveRequest{}, WrapKind("parse high_tier", ErrBadRequest, err)
		}
	}
	req.Mode = q.Get("augment")
	if v := q.Get("tier_coefficient"); v != "" {
		if req.TierCoefficient, err = strconv.ParseFloat(v, 64); err != nil {
			return types.SolveRequest{}, WrapKind("parse tier_coefficient", ErrBadRequest, err)
		}
	}
	return req, nil
}
