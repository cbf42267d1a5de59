package domain

import "errors"

var (
	// ErrInvalidArgument marks malformed or missing input. Every precondition
	// failure in the matcher and composer wraps it.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrProviderNotFound   = errors.New("provider not found")
	ErrProviderAtCapacity = errors.New("provider at full capacity")
	ErrProviderOffline    = errors.New("provider is offline")
)
