package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"roadside-dispatch-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProvidersQuery := `
	CREATE TABLE IF NOT EXISTS providers (
		provider_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		rating DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 5),
		availability TEXT NOT NULL CHECK (availability IN ('available', 'busy', 'offline')),
		current_load INTEGER NOT NULL DEFAULT 0 CHECK (current_load >= 0),
		max_capacity INTEGER NOT NULL CHECK (max_capacity > 0),
		services TEXT[] NOT NULL DEFAULT '{}'
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_providers_availability
	ON providers(availability);
	`

	statements := []string{
		createProvidersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ProviderSeed struct {
	ProviderID   string   `json:"provider_id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lng"`
	Rating       float64  `json:"rating"`
	Availability string   `json:"availability"`
	CurrentLoad  int      `json:"current_load"`
	MaxCapacity  int      `json:"max_capacity"`
	Services     []string `json:"services"`
}

func (s ProviderSeed) toDomain() domain.Provider {
	return domain.Provider{
		ID:           strings.TrimSpace(s.ProviderID),
		Name:         strings.TrimSpace(s.Name),
		Phone:        strings.TrimSpace(s.Phone),
		Location:     domain.Coordinates{Lat: s.Lat, Lon: s.Lon},
		Rating:       s.Rating,
		Availability: domain.Availability(s.Availability),
		CurrentLoad:  s.CurrentLoad,
		MaxCapacity:  s.MaxCapacity,
		Services:     s.Services,
	}
}

// Populate the database with provider data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed providers: read %q: %w", jsonPath, err)
	}

	var data []ProviderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed providers: parse json: %w", err)
	}

	return SeedProviders(db, data)
}

// SeedProviders validates and upserts providers in a single transaction.
func SeedProviders(db *sql.DB, data []ProviderSeed) error {
	if db == nil {
		return errors.New("seed providers: DB is nil")
	}

	rows := make([]domain.Provider, 0, len(data))
	for i, item := range data {
		p := item.toDomain()
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed providers: item at index %d: %w", i+1, err)
		}
		if err := p.Location.Validate(); err != nil {
			return fmt.Errorf("seed providers: item at index %d: %w", i+1, err)
		}
		rows = append(rows, p)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed providers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO providers (
		provider_id, name, phone, lat, lon, rating,
		availability, current_load, max_capacity, services
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, string_to_array($10, ','))
	ON CONFLICT (provider_id) DO UPDATE
	SET name = EXCLUDED.name,
		phone = EXCLUDED.phone,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		rating = EXCLUDED.rating,
		availability = EXCLUDED.availability,
		current_load = EXCLUDED.current_load,
		max_capacity = EXCLUDED.max_capacity,
		services = EXCLUDED.services;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed providers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.Exec(
			p.ID, p.Name, p.Phone, p.Location.Lat, p.Location.Lon, p.Rating,
			string(p.Availability), p.CurrentLoad, p.MaxCapacity, strings.Join(p.Services, ","),
		); err != nil {
			return fmt.Errorf("seed providers: insert provider_id=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed providers: commit tx: %w", err)
	}

	return nil
}
