package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/troyan365/marketplace/internal/favorite/domain"
)

// GormFavoriteRepositoryWithTracing wraps repository operations with tracing spans
type GormFavoriteRepositoryWithTracing struct {
	*GormFavoriteRepository
	tracer trace.Tracer
}

// NewGormFavoriteRepositoryWithTracing creates a repository with tracing
func NewGormFavoriteRepositoryWithTracing(repo *GormFavoriteRepository) *GormFavoriteRepositoryWithTracing {
	return &GormFavoriteRepositoryWithTracing{
		GormFavoriteRepository: repo,
		tracer:                 otel.Tracer("favorite-repository"),
	}
}

// ListByUser lists favorites with a database span
func (r *GormFavoriteRepositoryWithTracing) ListByUser(ctx context.Context, userID uint) ([]domain.FavoriteRef, error) {
	ctx, span := r.tracer.Start(ctx, "db.favorites.list",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.Int("user.id", int(userID)),
		),
	)
	defer span.End()

	refs, err := r.GormFavoriteRepository.ListByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("favorites.count", len(refs)))
	return refs, nil
}

// Add inserts a favorite with a database span
func (r *GormFavoriteRepositoryWithTracing) Add(ctx context.Context, userID uint, listingID string) error {
	ctx, span := r.tracer.Start(ctx, "db.favorites.add",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.Int("user.id", int(userID)),
			attribute.String("listing.id", listingID),
		),
	)
	defer span.End()

	err := r.GormFavoriteRepository.Add(ctx, userID, listingID)
	if err != nil && !domain.IsConstraint(err) {
		span.RecordError(err)
	}
	return err
}

// Remove deletes a favorite with a database span
func (r *GormFavoriteRepositoryWithTracing) Remove(ctx context.Context, userID uint, listingID string) error {
	ctx, span := r.tracer.Start(ctx, "db.favorites.remove",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.Int("user.id", int(userID)),
			attribute.String("listing.id", listingID),
		),
	)
	defer span.End()

	err := r.GormFavoriteRepository.Remove(ctx, userID, listingID)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
