package sessionStore

import (
	"context"
	"testing"

	"TMDBMovieBot/internal/domain"
)

func browseSession(n int) domain.Session {
	candidates := make([]domain.Candidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, domain.Candidate{ID: 100 + i, Title: "Movie"})
	}
	return domain.Session{Candidates: candidates}
}

func TestPutAndGetRoundtrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.Put(ctx, 42, browseSession(3))

	session, ok := store.Get(ctx, 42)
	if !ok {
		t.Fatal("expected session after Put")
	}
	if len(session.Candidates) != 3 || session.CurrentIndex != 0 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.CorrelationID == "" {
		t.Fatal("expected correlation ID to be assigned")
	}
}

func TestGetMissingUser(t *testing.T) {
	store := New()
	if _, ok := store.Get(context.Background(), 7); ok {
		t.Fatal("expected no session for unknown user")
	}
}

func TestPutReplacesCompletely(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.Put(ctx, 42, browseSession(5))
	store.UpdateIndex(ctx, 42, 4, mustVersion(t, store, 42))
	first, _ := store.Get(ctx, 42)

	store.Put(ctx, 42, browseSession(2))
	second, _ := store.Get(ctx, 42)

	if second.CurrentIndex != 0 || len(second.Candidates) != 2 {
		t.Fatalf("expected total replacement, got %+v", second)
	}
	if second.CorrelationID != first.CorrelationID {
		t.Fatal("expected correlation ID to survive replacement")
	}
	if second.Version <= first.Version {
		t.Fatal("expected version to move forward on replacement")
	}
}

func TestUpdateIndexClampsRange(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.Put(ctx, 1, browseSession(3))

	if !store.UpdateIndex(ctx, 1, 99, mustVersion(t, store, 1)) {
		t.Fatal("expected commit")
	}
	session, _ := store.Get(ctx, 1)
	if session.CurrentIndex != 2 {
		t.Fatalf("expected clamp to last index, got %d", session.CurrentIndex)
	}

	if !store.UpdateIndex(ctx, 1, -5, mustVersion(t, store, 1)) {
		t.Fatal("expected commit")
	}
	session, _ = store.Get(ctx, 1)
	if session.CurrentIndex != 0 {
		t.Fatalf("expected clamp to zero, got %d", session.CurrentIndex)
	}
}

func TestUpdateIndexMissingUserIsNoop(t *testing.T) {
	store := New()
	if store.UpdateIndex(context.Background(), 99, 1, 0) {
		t.Fatal("expected no-op for unknown user")
	}
}

func TestUpdateIndexStaleVersionIsDropped(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.Put(ctx, 1, browseSession(4))
	stale := mustVersion(t, store, 1)

	// A concurrent search replaces the session while a navigation is
	// suspended on its fetch.
	store.Put(ctx, 1, browseSession(2))

	if store.UpdateIndex(ctx, 1, 3, stale) {
		t.Fatal("expected stale commit to be dropped")
	}
	session, _ := store.Get(ctx, 1)
	if session.CurrentIndex != 0 {
		t.Fatalf("expected index untouched, got %d", session.CurrentIndex)
	}
}

func TestSetAwaitingQueryCreatesBareSession(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.SetAwaitingQuery(ctx, 5, true)
	session, ok := store.Get(ctx, 5)
	if !ok || !session.AwaitingQuery {
		t.Fatalf("expected bare awaiting session, got %+v", session)
	}
	if len(session.Candidates) != 0 {
		t.Fatal("bare awaiting session must have no candidates")
	}
}

func TestUpdateIndexClearsAwaitingQuery(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.Put(ctx, 5, browseSession(3))
	store.SetAwaitingQuery(ctx, 5, true)

	store.UpdateIndex(ctx, 5, 1, mustVersion(t, store, 5))
	session, _ := store.Get(ctx, 5)
	if session.AwaitingQuery {
		t.Fatal("expected navigation to clear the awaiting step")
	}
}

func TestResetDeletesSession(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.Put(ctx, 8, browseSession(1))
	store.Reset(ctx, 8)
	if _, ok := store.Get(ctx, 8); ok {
		t.Fatal("expected session gone after Reset")
	}
}

func TestEvictionPolicyFiresOnReplacement(t *testing.T) {
	store := New()
	ctx := context.Background()

	var evicted []*domain.Session
	store.SetEvictionPolicy(func(userID int64, replaced *domain.Session) {
		evicted = append(evicted, replaced)
	})

	store.Put(ctx, 3, browseSession(2))
	store.Put(ctx, 3, browseSession(3))

	if len(evicted) != 2 {
		t.Fatalf("expected hook on every Put, got %d calls", len(evicted))
	}
	if evicted[0] != nil {
		t.Fatal("first Put replaces nothing")
	}
	if evicted[1] == nil || len(evicted[1].Candidates) != 2 {
		t.Fatal("second Put should hand the replaced session to the hook")
	}
}

func TestActiveUserIDsTracksPutAndReset(t *testing.T) {
	store := New()
	ctx := context.Background()

	if got := store.ActiveUserIDs(ctx); len(got) != 0 {
		t.Fatalf("expected no active users, got %v", got)
	}

	store.Put(ctx, 1, browseSession(1))
	store.Put(ctx, 2, browseSession(1))
	if got := store.ActiveUserIDs(ctx); len(got) != 2 {
		t.Fatalf("expected 2 active users, got %v", got)
	}

	store.Reset(ctx, 1)
	got := store.ActiveUserIDs(ctx)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only user 2 active, got %v", got)
	}
}

func TestCorrelationIDStableWithinSession(t *testing.T) {
	store := New()
	ctx := context.Background()
	store.Put(ctx, 9, browseSession(1))

	first := store.CorrelationID(ctx, 9)
	second := store.CorrelationID(ctx, 9)
	if first == "" || first != second {
		t.Fatalf("expected stable correlation ID, got %q / %q", first, second)
	}
}

func mustVersion(t *testing.T, store *Store, userID int64) uint64 {
	t.Helper()
	session, ok := store.Get(context.Background(), userID)
	if !ok {
		t.Fatalf("no session for user %d", userID)
	}
	return session.Version
}
