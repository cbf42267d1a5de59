package domain

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Availability is the dispatch state of a service provider.
type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	Offline   Availability = "offline"
)

// Rank orders availability states for candidate sorting: available first.
func (a Availability) Rank() int {
	switch a {
	case Available:
		return 0
	case Busy:
		return 1
	default:
		return 2
	}
}

func (a Availability) Valid() bool {
	return a == Available || a == Busy || a == Offline
}

// Represents a roadside-assistance provider (mechanic, tow truck, ...).
// DistanceKm is relative to the current requester and is filled in per search;
// the directory itself only stores Location.
type Provider struct {
	ID           string
	Name         string
	Phone        string
	Location     Coordinates
	DistanceKm   float64
	Rating       float64
	Availability Availability
	CurrentLoad  int
	MaxCapacity  int
	Services     []string
}

// Offers reports whether the provider handles the given service type.
// An empty service type matches every provider.
func (p Provider) Offers(service string) bool {
	if service == "" {
		return true
	}
	for _, s := range p.Services {
		if s == service {
			return true
		}
	}
	return false
}

// FreeCapacity is the fraction of MaxCapacity not taken by active assignments.
func (p Provider) FreeCapacity() float64 {
	return float64(p.MaxCapacity-p.CurrentLoad) / float64(p.MaxCapacity)
}

// Validate checks the preconditions the matcher relies on.
func (p Provider) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.DistanceKm, validation.Min(0.0), validation.By(finite)),
		validation.Field(&p.Rating, validation.Min(0.0), validation.Max(5.0), validation.By(finite)),
		validation.Field(&p.Availability, validation.Required, validation.In(Available, Busy, Offline)),
		validation.Field(&p.CurrentLoad, validation.Min(0)),
		validation.Field(&p.MaxCapacity, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: provider %q: %v", ErrInvalidArgument, p.ID, err)
	}
	return nil
}

func finite(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return validation.NewError("validation_not_finite", "must be a finite number")
	}
	return nil
}
