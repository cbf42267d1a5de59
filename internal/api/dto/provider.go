package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"roadside-dispatch-service/internal/domain"
)

type CoordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c CoordinatesDTO) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&c.Lng, validation.Min(-180.0), validation.Max(180.0)),
	)
}

func (c CoordinatesDTO) ToDomain() domain.Coordinates {
	return domain.Coordinates{Lat: c.Lat, Lon: c.Lng}
}

type ProviderResponse struct {
	ProviderID   string         `json:"provider_id"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Location     CoordinatesDTO `json:"location"`
	DistanceKm   *float64       `json:"distance_km,omitempty"`
	Rating       float64        `json:"rating"`
	Availability string         `json:"availability"`
	CurrentLoad  int            `json:"current_load"`
	MaxCapacity  int            `json:"max_capacity"`
	Services     []string       `json:"services"`
}

// NewProviderResponse maps a provider; withDistance controls whether the
// per-search distance is included.
func NewProviderResponse(p domain.Provider, withDistance bool) ProviderResponse {
	res := ProviderResponse{
		ProviderID:   p.ID,
		Name:         p.Name,
		Phone:        p.Phone,
		Location:     CoordinatesDTO{Lat: p.Location.Lat, Lng: p.Location.Lon},
		Rating:       p.Rating,
		Availability: string(p.Availability),
		CurrentLoad:  p.CurrentLoad,
		MaxCapacity:  p.MaxCapacity,
		Services:     p.Services,
	}
	if res.Services == nil {
		res.Services = []string{}
	}
	if withDistance {
		d := p.DistanceKm
		res.DistanceKm = &d
	}
	return res
}

type ListProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
}
