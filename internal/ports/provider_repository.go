package ports

import (
	"context"

	"roadside-dispatch-service/internal/domain"
)

// Port: a boundary for the provider directory.
type ProviderRepository interface {
	// Retrieve every provider in the directory. DistanceKm is left zero.
	ListProviders(ctx context.Context) ([]domain.Provider, error)
	// Retrieve a single provider or domain.ErrProviderNotFound.
	GetProvider(ctx context.Context, id string) (*domain.Provider, error)
	// Take one unit of capacity. Fails with domain.ErrProviderAtCapacity when full
	// and domain.ErrProviderOffline when the provider is offline.
	IncrementLoad(ctx context.Context, id string) (*domain.Provider, error)
}
