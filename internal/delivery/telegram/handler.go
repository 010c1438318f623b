package telegram

import (
	"TMDBMovieBot/internal/domain"
	"TMDBMovieBot/internal/usecase"
	"TMDBMovieBot/pkg/prometheus"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	correlationIDKey = "correlation_id"
	chatIDKey        = "chat_id"
	userIDKey        = "user_id"
	commandKey       = "command"
	errorKey         = "error"
	successKey       = "success"
	ignoredKey       = "ignored"
	queryKey         = "query"
	eventKey         = "event"

	msgStart         = "Send /movie <title> to search for a movie."
	msgHelp          = "Search the movie database with /movie <title>, pick a result from the menu, then page through the rest with the Previous and Next buttons. /reset clears your search state."
	msgUnknown       = "Unknown command. Send /movie <title> to search for a movie."
	msgReset         = "Search state cleared. Send /movie <title> to start over."
	msgPromptQuery   = "Please type your search query:"
	msgSelectMovie   = "Please select a movie:"
	msgSearchFailure = "Sorry, there was an error fetching the movie details."
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)

	case update.Message == nil:
		return

	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message.Chat.ID, update.Message.From.ID,
			update.Message.Command(), update.Message.CommandArguments())

	default:
		b.handleText(ctx, update.Message.Chat.ID, update.Message.From.ID,
			strings.TrimSpace(update.Message.Text))
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID, userID int64, command string, query string) {
	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	ctx = context.WithValue(ctx, correlationIDKey, b.CorrelationID(ctx, userID))

	b.log.Info(
		"command received", chatIDKey, chatID, userIDKey, userID, commandKey, command,
		queryKey, query, correlationIDKey, ctx.Value(correlationIDKey))

	switch command {
	case "movie":
		if err := b.handleSearch(ctx, chatID, userID, query); err != nil {
			status = errorKey
		}
	case "start":
		b.SendMessage(ctx, chatID, msgStart)
	case "help":
		b.SendMessage(ctx, chatID, msgHelp)
	case "reset":
		b.handleReset(ctx, chatID, userID)
	default:
		status = errorKey
		b.SendMessage(ctx, chatID, msgUnknown)
	}
}

// handleText routes plain messages. They matter only while a session is
// waiting for a follow-up query after a Search button press.
func (b *Bot) handleText(ctx context.Context, chatID, userID int64, text string) {
	session, ok := b.Get(ctx, userID)
	if !ok || !session.AwaitingQuery {
		return
	}

	ctx = context.WithValue(ctx, correlationIDKey, session.CorrelationID)
	b.log.Info("follow-up query received",
		chatIDKey, chatID, userIDKey, userID, queryKey, text,
		correlationIDKey, ctx.Value(correlationIDKey))

	status := successKey
	defer func() {
		prometheus.CommandCounter.WithLabelValues("movie", status).Inc()
	}()
	if err := b.handleSearch(ctx, chatID, userID, text); err != nil {
		status = errorKey
	}
}

// handleSearch is the command dispatcher: search the catalog, store a
// fresh session and offer the selection menu, or report why not.
func (b *Bot) handleSearch(ctx context.Context, chatID, userID int64, query string) error {
	candidates, err := b.SearchMovies(ctx, query)
	if errors.Is(err, domain.ErrEmptyQuery) {
		// A bare /movie is a user-input error: silently ignored, no
		// reply, nothing touched.
		b.log.Debug("empty search query ignored",
			chatIDKey, chatID, correlationIDKey, ctx.Value(correlationIDKey))
		return nil
	}
	if err != nil {
		prometheus.APIFailures.WithLabelValues("search").Inc()
		b.log.Error("movie search failed",
			chatIDKey, chatID, queryKey, query,
			correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		b.SendMessage(ctx, chatID, msgSearchFailure)
		return err
	}

	if len(candidates) == 0 {
		b.log.Info("no movies found",
			chatIDKey, chatID, queryKey, query,
			correlationIDKey, ctx.Value(correlationIDKey))
		b.SendMessage(ctx, chatID, `No results found for "`+strings.TrimSpace(query)+`".`)
		return nil
	}

	b.Put(ctx, userID, domain.Session{
		Candidates:   candidates,
		CurrentIndex: 0,
	})
	prometheus.ActiveSessions.Set(float64(len(b.ActiveUserIDs(ctx))))

	b.sendSelectionMenu(ctx, chatID, candidates)
	return nil
}

func (b *Bot) handleReset(ctx context.Context, chatID, userID int64) {
	b.Reset(ctx, userID)
	prometheus.ActiveSessions.Set(float64(len(b.ActiveUserIDs(ctx))))
	b.SendMessage(ctx, chatID, msgReset)
}

func (b *Bot) sendSelectionMenu(ctx context.Context, chatID int64, candidates []domain.Candidate) {
	msg := tgbotapi.NewMessage(chatID, msgSelectMovie)
	msg.ReplyMarkup = BuildSelectionMenu(candidates)
	if _, err := b.Send(msg); err != nil {
		b.log.Error("failed to send selection menu",
			chatIDKey, chatID, correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		return
	}
	prometheus.MessagesSent.WithLabelValues("menu").Inc()
}

// handleCallback is the interaction router: parse the event, run the
// pure transition against a session snapshot, execute the effect.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	userID := callback.From.ID

	if err := b.AnswerCallbackQuery(callback.ID, ""); err != nil {
		b.log.Debug("failed to answer callback",
			chatIDKey, chatID, errorKey, err)
	}

	event, ok := parseCallbackEvent(callback.Data)
	if !ok {
		return
	}

	ctx = context.WithValue(ctx, correlationIDKey, b.CorrelationID(ctx, userID))

	status := successKey
	defer func() {
		prometheus.CallbackCounter.WithLabelValues(eventName(event), status).Inc()
	}()

	var snapshot *domain.Session
	if session, exists := b.Get(ctx, userID); exists {
		snapshot = &session
	}

	state, effect := usecase.Transition(snapshot, event)
	b.log.Debug("browse transition",
		chatIDKey, chatID, userIDKey, userID, eventKey, eventName(event),
		"state", state.String(), correlationIDKey, ctx.Value(correlationIDKey))

	switch eff := effect.(type) {
	case usecase.Ignore:
		status = ignoredKey

	case usecase.PromptQuery:
		b.SetAwaitingQuery(ctx, userID, true)
		b.SendMessage(ctx, chatID, msgPromptQuery)

	case usecase.RenderMovie:
		if err := b.renderMovie(ctx, chatID, userID, snapshot, eff.Index); err != nil {
			status = errorKey
		}
	}
}

// renderMovie executes a render effect through the browse use case,
// which owns the fetch-then-commit ordering. On any failure the session
// is left exactly where it was and the requester gets a generic notice.
func (b *Bot) renderMovie(ctx context.Context, chatID, userID int64, session *domain.Session, index int) error {
	committed, err := b.Navigate(ctx, session, index, func(movie domain.Movie) error {
		return b.sendMovieCard(chatID, BuildMovieCard(movie, index, len(session.Candidates)))
	})
	if err != nil {
		prometheus.APIFailures.WithLabelValues("detail").Inc()
		b.log.Error("movie render failed",
			chatIDKey, chatID, userIDKey, userID,
			correlationIDKey, ctx.Value(correlationIDKey), errorKey, err)
		b.SendMessage(ctx, chatID, msgSearchFailure)
		return err
	}
	if !committed {
		b.log.Debug("index commit dropped, session moved during fetch",
			chatIDKey, chatID, userIDKey, userID,
			correlationIDKey, ctx.Value(correlationIDKey))
	}
	return nil
}

func (b *Bot) sendMovieCard(chatID int64, card Card) error {
	if card.PosterURL == "" {
		msg := tgbotapi.NewMessage(chatID, card.Caption)
		msg.ReplyMarkup = card.Keyboard
		if _, err := b.Send(msg); err != nil {
			return err
		}
		prometheus.MessagesSent.WithLabelValues("text").Inc()
		return nil
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(card.PosterURL))
	photo.Caption = card.Caption
	photo.ReplyMarkup = card.Keyboard
	if _, err := b.Send(photo); err != nil {
		return err
	}
	prometheus.MessagesSent.WithLabelValues("photo").Inc()
	return nil
}

func parseCallbackEvent(data string) (domain.BrowseEvent, bool) {
	switch {
	case strings.HasPrefix(data, callbackSelectPrefix):
		movieID, err := strconv.Atoi(strings.TrimPrefix(data, callbackSelectPrefix))
		if err != nil {
			return nil, false
		}
		return domain.EventSelect{MovieID: movieID}, true
	case data == callbackNext:
		return domain.EventNext{}, true
	case data == callbackPrev:
		return domain.EventPrev{}, true
	case data == callbackSearch:
		return domain.EventSearchAgain{}, true
	default:
		return nil, false
	}
}

func eventName(event domain.BrowseEvent) string {
	switch event.(type) {
	case domain.EventSelect:
		return "select"
	case domain.EventNext:
		return "next"
	case domain.EventPrev:
		return "prev"
	case domain.EventSearchAgain:
		return "search_again"
	default:
		return "unknown"
	}
}
