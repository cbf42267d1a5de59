package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roadside-dispatch-service/internal/api/handlers"
	"roadside-dispatch-service/internal/ports"
)

// Options carries the request defaults handlers need from configuration.
type Options struct {
	DefaultRadiusKm float64
	MaxRadiusKm     float64
	DispatchPhone   string
	Location        *time.Location
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.ProviderRepository, provider ports.DistanceProvider, opts Options) http.Handler {
	mux := http.NewServeMux()

	providerHandler := &handlers.ProviderHandler{Repo: repo}
	matchHandler := &handlers.MatchHandler{
		Repo:            repo,
		Provider:        provider,
		DefaultRadiusKm: opts.DefaultRadiusKm,
		MaxRadiusKm:     opts.MaxRadiusKm,
	}
	emergencyHandler := &handlers.EmergencyHandler{
		Repo:          repo,
		DispatchPhone: opts.DispatchPhone,
		Location:      opts.Location,
	}
	dispatchHandler := &handlers.DispatchHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/providers", providerHandler.List)
	mux.HandleFunc("/matches", matchHandler.Match)
	mux.HandleFunc("/emergency/requests", emergencyHandler.Create)
	mux.HandleFunc("/dispatches", dispatchHandler.Dispatch)

	return requestIDMiddleware(loggingMiddleware(mux))
}
