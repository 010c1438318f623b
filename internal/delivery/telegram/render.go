package telegram

import (
	"TMDBMovieBot/internal/domain"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackSelectPrefix = "select:"
	callbackNext         = "nav:next"
	callbackPrev         = "nav:prev"
	callbackSearch       = "search"
	callbackNoop         = "noop"

	posterBaseURL = "https://image.tmdb.org/t/p/w500"
	tmdbMovieURL  = "https://www.themoviedb.org/movie/%d"
	imdbTitleURL  = "https://www.imdb.com/title/%s/"

	// Telegram caps photo captions at 1024 characters and plain
	// messages at 4096.
	maxCaptionLen = 1024
	maxMessageLen = 4000
	maxButtonLen  = 48

	noGenres   = "No genres available."
	noCast     = "No cast information available."
	noOverview = "No overview available."
	notAvail   = "N/A"
)

// Card is the display payload for one movie at one position in the
// browsable result set. Building it touches no session or store state.
type Card struct {
	Caption   string
	PosterURL string
	Keyboard  tgbotapi.InlineKeyboardMarkup
}

func BuildMovieCard(movie domain.Movie, index, total int) Card {
	var sb strings.Builder

	sb.WriteString(movie.Title)
	sb.WriteString("\n\n")
	sb.WriteString(orPlaceholder(movie.Overview, noOverview))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Release Date: %s\n", orPlaceholder(movie.ReleaseDate, notAvail))
	fmt.Fprintf(&sb, "Rating: %s\n", formatRating(movie.VoteAverage))
	fmt.Fprintf(&sb, "Genres: %s\n", joinOrPlaceholder(movie.Genres, noGenres))
	fmt.Fprintf(&sb, "Cast: %s\n", joinOrPlaceholder(movie.Cast, noCast))
	fmt.Fprintf(&sb, "Language: %s\n", strings.ToUpper(movie.OriginalLanguage))
	fmt.Fprintf(&sb, "Runtime: %s\n", formatRuntime(movie.RuntimeMinutes))
	fmt.Fprintf(&sb, "Budget: %s\n", formatMoney(movie.Budget))
	fmt.Fprintf(&sb, "Revenue: %s\n", formatMoney(movie.Revenue))
	fmt.Fprintf(&sb, "\nResult %d of %d", index+1, total)

	return Card{
		Caption:   truncate(sb.String(), maxCaptionLen),
		PosterURL: posterURL(movie.PosterPath),
		Keyboard:  buildCardKeyboard(movie, index, total),
	}
}

func buildCardKeyboard(movie domain.Movie, index, total int) tgbotapi.InlineKeyboardMarkup {
	// Telegram has no disabled buttons; a boundary button carries noop
	// data which the router acks and drops.
	prevData := callbackPrev
	if index == 0 {
		prevData = callbackNoop
	}
	nextData := callbackNext
	if index == total-1 {
		nextData = callbackNoop
	}

	navRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Previous", prevData),
		tgbotapi.NewInlineKeyboardButtonData("Next", nextData),
		tgbotapi.NewInlineKeyboardButtonData("Search", callbackSearch),
	)

	linkRow := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonURL("TMDB", fmt.Sprintf(tmdbMovieURL, movie.ID)),
	}
	if movie.IMDbID != "" {
		linkRow = append(linkRow,
			tgbotapi.NewInlineKeyboardButtonURL("IMDb", fmt.Sprintf(imdbTitleURL, movie.IMDbID)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(navRow, linkRow)
}

func BuildSelectionMenu(candidates []domain.Candidate) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				truncate(candidate.Title, maxButtonLen),
				callbackSelectPrefix+strconv.Itoa(candidate.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatRating(voteAverage float64) string {
	if voteAverage == 0 {
		return notAvail
	}
	return fmt.Sprintf("%.1f/10", voteAverage)
}

func formatRuntime(minutes int) string {
	if minutes == 0 {
		return notAvail
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func formatMoney(amount int64) string {
	if amount == 0 {
		return notAvail
	}
	return "$" + groupThousands(amount)
}

func groupThousands(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}

	if negative {
		return "-" + sb.String()
	}
	return sb.String()
}

func joinOrPlaceholder(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, ", ")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return posterBaseURL + path
}

// truncate cuts on a rune boundary so multi-byte titles and overviews
// never produce an invalid-UTF-8 payload.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
