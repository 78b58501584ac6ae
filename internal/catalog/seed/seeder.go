package seed

import (
	"context"
	"fmt"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/pkg/logger"
)

// GenerationSize is the number of catalog entries seeded at bootstrap
const GenerationSize = 151

// Seeder populates an empty catalog from the PokeAPI. It runs before
// the service accepts traffic and is gated by an explicit empty check,
// so a restart against a populated database is a no-op.
type Seeder struct {
	catalog domain.CatalogRepository
	client  *Client
	limit   int
}

// NewSeeder creates a new catalog seeder
func NewSeeder(catalog domain.CatalogRepository, client *Client) *Seeder {
	return &Seeder{catalog: catalog, client: client, limit: GenerationSize}
}

// Run seeds the catalog when it is empty. Counters start at zero; the
// vote engine is the only writer allowed to change them afterwards.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.catalog.Count()
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if count > 0 {
		logger.Logger.Info().
			Int64("pokemon", count).
			Msg("Catalog already seeded, skipping")
		return nil
	}

	logger.Logger.Info().
		Int("limit", s.limit).
		Msg("Seeding pokemon catalog")

	entries, err := s.client.FetchGeneration(ctx, s.limit)
	if err != nil {
		return fmt.Errorf("failed to fetch seed data: %w", err)
	}

	rows := make([]domain.Pokemon, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.Pokemon{
			ID:       e.ID,
			Name:     e.Name,
			ImageURL: e.ImageURL,
			Types:    e.Types,
		})
	}

	if err := s.catalog.BulkInsert(rows); err != nil {
		return fmt.Errorf("failed to insert seed data: %w", err)
	}

	logger.Logger.Info().
		Int("pokemon", len(rows)).
		Msg("Catalog seeded")
	return nil
}
