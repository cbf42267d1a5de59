package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EmergencyRequest describes a stranded driver asking for help.
// Location is optional; ProviderID selects the chat recipient.
type EmergencyRequest struct {
	ServiceName string          `json:"service_name"`
	Location    *CoordinatesDTO `json:"location"`
	ProviderID  string          `json:"provider_id"`
}

func (r EmergencyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ServiceName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Location),
		validation.Field(&r.ProviderID, validation.Length(0, 64)),
	)
}

type EmergencyResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
	MapsURL     string `json:"maps_url,omitempty"`
	Phone       string `json:"phone"`
}
