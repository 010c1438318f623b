package domain

// BrowseEvent is a discrete UI event routed back onto a session.
type BrowseEvent interface {
	isBrowseEvent()
}

type EventSelect struct {
	MovieID int
}

type EventNext struct{}

type EventPrev struct{}

type EventSearchAgain struct{}

func (EventSelect) isBrowseEvent()      {}
func (EventNext) isBrowseEvent()        {}
func (EventPrev) isBrowseEvent()        {}
func (EventSearchAgain) isBrowseEvent() {}

type BrowseState int

const (
	StateNoSession BrowseState = iota
	StateBrowsing
	StateAwaitingQuery
)

func (s BrowseState) String() string {
	switch s {
	case StateNoSession:
		return "no_session"
	case StateBrowsing:
		return "browsing"
	case StateAwaitingQuery:
		return "awaiting_query"
	default:
		return "unknown"
	}
}

// StateOf derives the browse state from a session snapshot. A nil session
// means the user has never searched (or the session was evicted).
func StateOf(session *Session) BrowseState {
	switch {
	case session == nil:
		return StateNoSession
	case session.AwaitingQuery:
		return StateAwaitingQuery
	default:
		return StateBrowsing
	}
}
