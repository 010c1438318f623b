package telegram

import (
	"TMDBMovieBot/configs"
	"TMDBMovieBot/pkg/prometheus"
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	*tgbotapi.BotAPI
	StateProvider
	MovieProvider
	BrowseProvider
	log *slog.Logger
}

func NewBot(config *configs.Config, states StateProvider, movies MovieProvider,
	browse BrowseProvider, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: config.TG.ConnectionTimeout,
	}

	return &Bot{api, states, movies, browse, log}, nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() {
	b.StopReceivingUpdates()
}

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageLen))
	if _, err := b.Send(msg); err != nil {
		b.log.ErrorContext(ctx, "failed to send message", chatIDKey, chatID, errorKey, err)
		return
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	_, err := b.Request(cfg)
	return err
}
