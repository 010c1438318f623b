package cachedRepo

import (
	"TMDBMovieBot/internal/domain"
	"TMDBMovieBot/pkg/prometheus"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type MediaRepository interface {
	SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error)
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
}

type CacheRepository interface {
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
	SetMovie(ctx context.Context, movie domain.Movie) error
}

// CachedRepo decorates the catalog repo with a cache-aside layer for
// detail fetches. Searches are always forwarded; result lists are
// query-dependent and short-lived, detail records are not.
type CachedRepo struct {
	repo  MediaRepository
	cache CacheRepository
	log   *slog.Logger
}

func NewCachedRepo(repo MediaRepository, cache CacheRepository, log *slog.Logger) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRepo) SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error) {
	return r.repo.SearchMovies(ctx, query)
}

func (r *CachedRepo) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	const op = "cachedRepo.GetMovieByID"
	movie, err := r.cache.GetMovieByID(ctx, movieID)
	if err == nil {
		prometheus.CacheOperations.WithLabelValues("hit").Inc()
		return movie, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		prometheus.CacheOperations.WithLabelValues("error").Inc()
		r.log.WarnContext(ctx, "cache lookup failed",
			"movieID", movieID,
			"error", err,
		)
	}
	prometheus.CacheOperations.WithLabelValues("miss").Inc()
	movie, err = r.repo.GetMovieByID(ctx, movieID)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		ctx := context.WithoutCancel(ctx)
		if err := r.cache.SetMovie(ctx, movie); err != nil {
			r.log.ErrorContext(ctx, "failed to cache movie",
				"movieID", movieID,
				"error", err,
			)
		}
	}()
	return movie, nil
}
