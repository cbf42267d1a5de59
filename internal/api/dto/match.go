package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MatchRequest asks for ranked providers around Origin.
// Omitted radii fall back to the server's matching defaults.
type MatchRequest struct {
	Origin      *CoordinatesDTO `json:"origin"`
	RadiusKm    *float64        `json:"radius_km"`
	MaxRadiusKm *float64        `json:"max_radius_km"`
	ServiceType string          `json:"service_type"`
}

func (r MatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Origin, validation.Required),
		validation.Field(&r.RadiusKm, validation.Min(0.0).Exclusive(), validation.Max(500.0)),
		validation.Field(&r.MaxRadiusKm, validation.Min(0.0), validation.Max(500.0)),
		validation.Field(&r.ServiceType, validation.Length(0, 64)),
	)
}

type MatchResponse struct {
	Provider      ProviderResponse `json:"provider"`
	Score         int              `json:"score"`
	IsRecommended bool             `json:"is_recommended"`
}

type ListMatchesResponse struct {
	RadiusKm float64         `json:"radius_km"`
	Matches  []MatchResponse `json:"matches"`
}
