package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormCatalogRepositoryWithTracing wraps GormCatalogRepository with tracing
type GormCatalogRepositoryWithTracing struct {
	*GormCatalogRepository
}

// NewGormCatalogRepositoryWithTracing creates a new repository with tracing
func NewGormCatalogRepositoryWithTracing(db *gorm.DB) *GormCatalogRepositoryWithTracing {
	return &GormCatalogRepositoryWithTracing{
		GormCatalogRepository: NewGormCatalogRepository(db),
	}
}

// FindByIDWithContext retrieves a pokemon by ID with tracing
func (r *GormCatalogRepositoryWithTracing) FindByIDWithContext(ctx context.Context, id int) (*domain.Pokemon, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("pokemon.id", id),
		),
	)
	defer span.End()

	p, err := r.GormCatalogRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("pokemon.name", p.Name))
	return p, nil
}

// FindAllWithContext lists the catalog with tracing
func (r *GormCatalogRepositoryWithTracing) FindAllWithContext(ctx context.Context) ([]domain.Pokemon, error) {
	_, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	list, err := r.GormCatalogRepository.FindAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("pokemon.count", len(list)))
	return list, nil
}

// ApplyVoteDeltasWithContext applies counter deltas with tracing
func (r *GormCatalogRepositoryWithTracing) ApplyVoteDeltasWithContext(ctx context.Context, id, likesDelta, dislikesDelta int) error {
	_, span := tracer.Start(ctx, "repository.ApplyVoteDeltas",
		trace.WithAttributes(
			attribute.Int("pokemon.id", id),
			attribute.Int("vote.likes_delta", likesDelta),
			attribute.Int("vote.dislikes_delta", dislikesDelta),
		),
	)
	defer span.End()

	if err := r.GormCatalogRepository.ApplyVoteDeltas(id, likesDelta, dislikesDelta); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
