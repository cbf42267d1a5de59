package services

import (
	"context"
	"errors"
	"sync"

	"roadside-dispatch-service/internal/domain"
)

type fakeRepo struct {
	mu        sync.Mutex
	providers []domain.Provider
	listErr   error
}

func (f *fakeRepo) ListProviders(context.Context) ([]domain.Provider, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Provider(nil), f.providers...), nil
}

func (f *fakeRepo) GetProvider(_ context.Context, id string) (*domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.providers {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (f *fakeRepo) IncrementLoad(_ context.Context, id string) (*domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.providers {
		p := &f.providers[i]
		if p.ID != id {
			continue
		}
		if p.Availability == domain.Offline {
			return nil, domain.ErrProviderOffline
		}
		if p.CurrentLoad >= p.MaxCapacity {
			return nil, domain.ErrProviderAtCapacity
		}
		p.CurrentLoad++
		out := *p
		return &out, nil
	}
	return nil, domain.ErrProviderNotFound
}

var errBoom = errors.New("boom")
