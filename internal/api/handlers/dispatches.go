package handlers

import (
	"net/http"

	"roadside-dispatch-service/internal/api/dto"
	"roadside-dispatch-service/internal/ports"
	"roadside-dispatch-service/internal/services"
)

type DispatchHandler struct {
	Repo ports.ProviderRepository
}

// Dispatch assigns the request to a provider, consuming one unit of capacity.
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DispatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := services.DispatchProvider(r.Context(), req.ProviderID, h.Repo)
	if err != nil {
		writeServiceError(w, r, "dispatch provider", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.DispatchResponse{
		Provider: dto.NewProviderResponse(*p, false),
	})
}
