package usecase

import (
	"TMDBMovieBot/internal/domain"
	"context"
)

type MovieRepository interface {
	SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error)
	GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error)
}

type SessionCommitter interface {
	UpdateIndex(ctx context.Context, userID int64, newIndex int, expectedVersion uint64) bool
}
