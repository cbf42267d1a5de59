package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roadside-dispatch-service/internal/domain"
	"roadside-dispatch-service/internal/platform/obs"
)

// Postgres-backed implementation of the ProviderRepository port.
type PostgresProviderRepository struct{ DB *sql.DB }

func NewPostgresProviderRepository(db *sql.DB) *PostgresProviderRepository {
	return &PostgresProviderRepository{DB: db}
}

const providerColumns = `
	provider_id,
	name,
	phone,
	lat,
	lon,
	rating,
	availability,
	current_load,
	max_capacity,
	array_to_string(services, ',')
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (domain.Provider, error) {
	var (
		p            domain.Provider
		availability string
		services     string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.Location.Lat, &p.Location.Lon, &p.Rating,
		&availability, &p.CurrentLoad, &p.MaxCapacity, &services,
	)
	if err != nil {
		return domain.Provider{}, err
	}

	p.Availability = domain.Availability(availability)
	p.Services = []string{}
	if services != "" {
		p.Services = strings.Split(services, ",")
	}
	return p, nil
}

// Return all providers stored in the database.
func (s *PostgresProviderRepository) ListProviders(ctx context.Context) (_ []domain.Provider, err error) {
	defer obs.Time(ctx, "providers.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres provider repository: DB is nil")
	}

	query := `SELECT` + providerColumns + `FROM providers ORDER BY provider_id;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list providers: query providers table: %w", err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0, 64)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("list providers: scan row: %w", err)
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list providers: row iteration: %w", err)
	}

	return providers, nil
}

// Return a single provider by id.
func (s *PostgresProviderRepository) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	if s.DB == nil {
		return nil, errors.New("postgres provider repository: DB is nil")
	}

	query := `SELECT` + providerColumns + `FROM providers WHERE provider_id = $1;`
	p, err := scanProvider(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get provider %q: %w", id, domain.ErrProviderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get provider %q: %w", id, err)
	}

	return &p, nil
}

// Take one unit of capacity in a single conditional update so concurrent
// dispatches can never push a provider past MaxCapacity.
func (s *PostgresProviderRepository) IncrementLoad(ctx context.Context, id string) (_ *domain.Provider, err error) {
	defer obs.Time(ctx, "providers.IncrementLoad")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres provider repository: DB is nil")
	}

	query := `
	UPDATE providers
	SET current_load = current_load + 1
	WHERE provider_id = $1
		AND availability <> 'offline'
		AND current_load < max_capacity
	RETURNING` + providerColumns + `;`

	p, err := scanProvider(s.DB.QueryRowContext(ctx, query, id))
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("increment load %q: %w", id, err)
	}

	// No row updated: tell a missing provider apart from a full or offline one.
	current, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("increment load: %w", err)
	}
	if current.Availability == domain.Offline {
		return nil, fmt.Errorf("increment load %q: %w", id, domain.ErrProviderOffline)
	}
	return nil, fmt.Errorf("increment load %q: %w", id, domain.ErrProviderAtCapacity)
}
