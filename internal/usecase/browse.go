package usecase

import (
	"TMDBMovieBot/internal/domain"
	"context"
	"fmt"
)

// Effect is what the delivery layer must do after a transition. Exactly
// one implementation comes back from Transition.
type Effect interface {
	isEffect()
}

// RenderMovie asks for the candidate at Index to be fetched and shown,
// committing the index only after the fetch succeeds.
type RenderMovie struct {
	Index int
}

// PromptQuery asks for the "type your search query" acknowledgement.
type PromptQuery struct{}

// Ignore drops the event: stale reference, boundary press, or no session.
type Ignore struct{}

func (RenderMovie) isEffect() {}
func (PromptQuery) isEffect() {}
func (Ignore) isEffect()      {}

// Browse executes render effects: it owns the fetch-then-commit
// ordering a navigation must follow.
type Browse struct {
	repo     MovieRepository
	sessions SessionCommitter
}

func NewBrowse(repo MovieRepository, sessions SessionCommitter) *Browse {
	return &Browse{repo: repo, sessions: sessions}
}

// Navigate resolves one render effect: fetch the detail record for the
// candidate at index, hand it to render, and commit the index only
// after both succeed. A fetch or render failure leaves the session
// exactly as it was. The commit is version-checked against the snapshot
// the event was routed on; when a concurrent event for the same user
// moved the session during the fetch, the commit is dropped without
// retry and committed reports false.
func (uc *Browse) Navigate(ctx context.Context, session *domain.Session, index int,
	render func(domain.Movie) error) (committed bool, err error) {
	const op = "useCase.Navigate"

	if session == nil || index < 0 || index >= len(session.Candidates) {
		return false, fmt.Errorf("%s: %w", op, domain.ErrNoSession)
	}

	movie, err := uc.repo.GetMovieByID(ctx, session.Candidates[index].ID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := render(movie); err != nil {
		return false, fmt.Errorf("%s: render failed: %w", op, err)
	}

	return uc.sessions.UpdateIndex(ctx, session.UserID, index, session.Version), nil
}

// Transition is the browse state machine: pure, no store access, no
// side effects. session is the snapshot the event was routed against and
// may be nil when the user has none.
func Transition(session *domain.Session, event domain.BrowseEvent) (domain.BrowseState, Effect) {
	state := domain.StateOf(session)

	// Every event for a user with no session is a no-op, stale buttons
	// included.
	if state == domain.StateNoSession {
		return state, Ignore{}
	}

	// Search-again is accepted from every session state; the rest need
	// a candidate set to act on.
	if _, ok := event.(domain.EventSearchAgain); ok {
		return domain.StateAwaitingQuery, PromptQuery{}
	}
	if len(session.Candidates) == 0 {
		return state, Ignore{}
	}

	switch ev := event.(type) {
	case domain.EventSelect:
		for i, candidate := range session.Candidates {
			if candidate.ID == ev.MovieID {
				return domain.StateBrowsing, RenderMovie{Index: i}
			}
		}
		return state, Ignore{}

	case domain.EventNext:
		if session.CurrentIndex >= len(session.Candidates)-1 {
			return state, Ignore{}
		}
		return domain.StateBrowsing, RenderMovie{Index: session.CurrentIndex + 1}

	case domain.EventPrev:
		if session.CurrentIndex <= 0 {
			return state, Ignore{}
		}
		return domain.StateBrowsing, RenderMovie{Index: session.CurrentIndex - 1}

	default:
		return state, Ignore{}
	}
}
