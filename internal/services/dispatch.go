package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/metrics"
	"roadside-dispatch-service/internal/ports"
)

// DispatchProvider assigns one request to the provider, taking a unit of its capacity.
// The capacity check and the increment happen atomically in the repository.
func DispatchProvider(ctx context.Context, providerID string, repo ports.ProviderRepository) (*domain.Provider, error) {
	id := strings.TrimSpace(providerID)
	if id == "" {
		return nil, fmt.Errorf("dispatch provider: %w: provider id must be non-empty", domain.ErrInvalidArgument)
	}

	p, err := repo.IncrementLoad(ctx, id)
	if err != nil {
		metrics.Dispatches.WithLabelValues(dispatchOutcome(err)).Inc()
		return nil, fmt.Errorf("dispatch provider: %w", err)
	}

	metrics.Dispatches.WithLabelValues("assigned").Inc()
	return p, nil
}

func dispatchOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrProviderAtCapacity):
		return "at_capacity"
	case errors.Is(err, domain.ErrProviderOffline):
		return "offline"
	default:
		return "error"
	}
}
