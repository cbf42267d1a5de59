package handlers

import (
	"net/http"
	"strings"
	"time"

	"roadside-dispatch-service/internal/adapters/messaging"
	"roadside-dispatch-service/internal/api/dto"
	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/metrics"
	"roadside-dispatch-service/internal/ports"
	"roadside-dispatch-service/internal/services"
)

// EmergencyHandler composes the dispatch message and the chat link that
// carries it. The recipient is the chosen provider, else the dispatch desk.
type EmergencyHandler struct {
	Repo          ports.ProviderRepository
	DispatchPhone string
	Location      *time.Location
	Now           func() time.Time
}

func (h *EmergencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.EmergencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	phone := h.DispatchPhone
	if id := strings.TrimSpace(req.ProviderID); id != "" {
		p, err := h.Repo.GetProvider(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, "get provider", err)
			return
		}
		phone = p.Phone
	}

	var loc *domain.Coordinates
	if req.Location != nil {
		c := req.Location.ToDomain()
		loc = &c
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	msg, err := services.ComposeMessage(req.ServiceName, loc, now(), h.Location)
	if err != nil {
		writeServiceError(w, r, "compose message", err)
		return
	}

	link, err := messaging.WhatsAppLink(phone, msg)
	if err != nil {
		writeServiceError(w, r, "whatsapp link", err)
		return
	}
	metrics.EmergencyMessages.Inc()

	res := dto.EmergencyResponse{
		Message:     msg,
		WhatsAppURL: link,
		Phone:       phone,
	}
	if loc != nil {
		res.MapsURL = services.MapsLink(*loc)
	}

	writeJSON(w, r, http.StatusCreated, res)
}
