package usecase

import (
	"TMDBMovieBot/internal/domain"
	"context"
	"fmt"
	"strings"
)

// maxCandidates caps the selection menu at the platform's practical
// option count.
const maxCandidates = 10

type Movies struct {
	repo MovieRepository
}

func NewMovies(repo MovieRepository) *Movies {
	return &Movies{repo: repo}
}

func (uc *Movies) SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error) {
	const op = "useCase.SearchMovies"

	query = strings.TrimSpace(query)
	if len(query) == 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	candidates, err := uc.repo.SearchMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: repo error: %w", op, err)
	}

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates, nil
}
