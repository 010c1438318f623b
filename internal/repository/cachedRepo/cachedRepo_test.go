package cachedRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"TMDBMovieBot/internal/domain"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	movie   domain.Movie
	err     error
	calls   int
	queries []string
}

func (s *stubRepo) SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error) {
	s.queries = append(s.queries, query)
	return nil, s.err
}

func (s *stubRepo) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	s.calls++
	return s.movie, s.err
}

type stubCache struct {
	movies map[int]domain.Movie
	getErr error
	setErr error
	set    chan domain.Movie
}

func newStubCache() *stubCache {
	return &stubCache{
		movies: make(map[int]domain.Movie),
		set:    make(chan domain.Movie, 1),
	}
}

func (s *stubCache) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	if s.getErr != nil {
		return domain.Movie{}, s.getErr
	}
	movie, ok := s.movies[movieID]
	if !ok {
		return domain.Movie{}, domain.ErrRecordNotFound
	}
	return movie, nil
}

func (s *stubCache) SetMovie(ctx context.Context, movie domain.Movie) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.movies[movie.ID] = movie
	s.set <- movie
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetMovieByIDCacheHitSkipsRepo(t *testing.T) {
	repo := &stubRepo{}
	cache := newStubCache()
	cache.movies[1] = domain.Movie{ID: 1, Title: "Cached"}
	cached := NewCachedRepo(repo, cache, discardLogger())

	movie, err := cached.GetMovieByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Cached", movie.Title)
	require.Zero(t, repo.calls)
}

func TestGetMovieByIDCacheMissFetchesAndBackfills(t *testing.T) {
	repo := &stubRepo{movie: domain.Movie{ID: 2, Title: "Fresh"}}
	cache := newStubCache()
	cached := NewCachedRepo(repo, cache, discardLogger())

	movie, err := cached.GetMovieByID(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Fresh", movie.Title)
	require.Equal(t, 1, repo.calls)

	select {
	case stored := <-cache.set:
		require.Equal(t, 2, stored.ID)
	case <-time.After(time.Second):
		t.Fatal("expected async cache backfill")
	}
}

func TestGetMovieByIDCacheErrorFallsThrough(t *testing.T) {
	repo := &stubRepo{movie: domain.Movie{ID: 3, Title: "Resilient"}}
	cache := newStubCache()
	cache.getErr = errors.New("connection refused")
	cached := NewCachedRepo(repo, cache, discardLogger())

	movie, err := cached.GetMovieByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Resilient", movie.Title)
}

func TestGetMovieByIDRepoErrorPropagates(t *testing.T) {
	repo := &stubRepo{err: errors.New("upstream down")}
	cached := NewCachedRepo(repo, newStubCache(), discardLogger())

	_, err := cached.GetMovieByID(context.Background(), 4)
	require.Error(t, err)
}

func TestSearchMoviesBypassesCache(t *testing.T) {
	repo := &stubRepo{}
	cached := NewCachedRepo(repo, newStubCache(), discardLogger())

	_, err := cached.SearchMovies(context.Background(), "Inception")
	require.NoError(t, err)
	require.Equal(t, []string{"Inception"}, repo.queries)
}
