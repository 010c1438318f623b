package main

import (
	"TMDBMovieBot/configs"
	"TMDBMovieBot/configs/loader/dotEnvLoader"
	"TMDBMovieBot/internal/delivery/telegram"
	"TMDBMovieBot/internal/repository/cachedRepo"
	"TMDBMovieBot/internal/repository/redisCache"
	"TMDBMovieBot/internal/repository/sessionStore"
	"TMDBMovieBot/internal/repository/tmdb"
	"TMDBMovieBot/internal/usecase"
	"TMDBMovieBot/pkg/logger"
	"TMDBMovieBot/pkg/prometheus"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prometheus.Init()

	repo := tmdb.NewRepo(cfg)
	cache, err := redisCache.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	cached := cachedRepo.NewCachedRepo(repo, cache, log)
	movies := usecase.NewMovies(cached)
	sessions := sessionStore.New()
	browse := usecase.NewBrowse(cached, sessions)

	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":8080", nil)
	log.Info("Starting prometheus at port 8080")

	bot, err := telegram.NewBot(cfg, sessions, movies, browse, log)
	if err != nil {
		log.Error("failed to create bot:", "error", err)
		os.Exit(1)
	}
	log.Info("Starting bot")
	go bot.Run(ctx)
	<-done
	log.Info("Shutting down bot")

	cancel()
	bot.Stop()
	log.Info("Service stopped")
}
