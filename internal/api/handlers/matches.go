package handlers

import (
	"net/http"
	"strings"

	"roadside-dispatch-service/internal/api/dto"
	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/ports"
	"roadside-dispatch-service/internal/services"
)

type MatchHandler struct {
	Repo            ports.ProviderRepository
	Provider        ports.DistanceProvider
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

// Match ranks and scores the providers around the requester.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	radius := h.DefaultRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	// An explicit radius above the server ceiling disables expansion instead
	// of being rejected.
	maxRadius := max(h.MaxRadiusKm, radius)
	if req.MaxRadiusKm != nil {
		maxRadius = *req.MaxRadiusKm
	}

	svcReq := domain.SearchRequest{
		Origin:      req.Origin.ToDomain(),
		RadiusKm:    radius,
		MaxRadiusKm: maxRadius,
		ServiceType: strings.TrimSpace(req.ServiceType),
	}

	result, err := services.SearchProviders(r.Context(), svcReq, h.Repo, h.Provider)
	if err != nil {
		writeServiceError(w, r, "search providers", err)
		return
	}

	res := dto.ListMatchesResponse{
		RadiusKm: result.RadiusKm,
		Matches:  make([]dto.MatchResponse, 0, len(result.Matches)),
	}
	for _, m := range result.Matches {
		res.Matches = append(res.Matches, dto.MatchResponse{
			Provider:      dto.NewProviderResponse(m.Provider, true),
			Score:         m.Score,
			IsRecommended: m.IsRecommended,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
