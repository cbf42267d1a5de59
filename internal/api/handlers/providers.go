package handlers

import (
	"net/http"
	"strings"

	"roadside-dispatch-service/internal/api/dto"
	"roadside-dispatch-service/internal/ports"
)

// ProviderHandler exposes the read-only provider directory.
type ProviderHandler struct {
	Repo ports.ProviderRepository
}

// List returns every provider, optionally narrowed with ?service=<type>.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	providers, err := h.Repo.ListProviders(r.Context())
	if err != nil {
		writeServiceError(w, r, "list providers", err)
		return
	}

	service := strings.TrimSpace(r.URL.Query().Get("service"))

	res := dto.ListProvidersResponse{
		Providers: make([]dto.ProviderResponse, 0, len(providers)),
	}
	for _, p := range providers {
		if !p.Offers(service) {
			continue
		}
		res.Providers = append(res.Providers, dto.NewProviderResponse(p, false))
	}

	writeJSON(w, r, http.StatusOK, res)
}
