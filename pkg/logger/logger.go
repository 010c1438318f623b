package logger

import (
	"TMDBMovieBot/configs"
	"log/slog"
	"os"
)

func NewLogger(cfg *configs.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.Env {
	case "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
