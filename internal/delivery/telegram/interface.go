package telegram

import (
	"TMDBMovieBot/internal/domain"
	"context"
)

type StateProvider interface {
	Put(ctx context.Context, userID int64, session domain.Session)
	Get(ctx context.Context, userID int64) (domain.Session, bool)
	SetAwaitingQuery(ctx context.Context, userID int64, awaiting bool)
	Reset(ctx context.Context, userID int64)
	CorrelationID(ctx context.Context, userID int64) string
	ActiveUserIDs(ctx context.Context) []int64
}

type MovieProvider interface {
	SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error)
}

type BrowseProvider interface {
	Navigate(ctx context.Context, session *domain.Session, index int,
		render func(domain.Movie) error) (committed bool, err error)
}
