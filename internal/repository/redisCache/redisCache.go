package redisCache

import (
	"TMDBMovieBot/configs"
	"TMDBMovieBot/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, config *configs.Config) (*Cache, error) {
	const op = "redisCache.New"

	client := redis.NewClient(&redis.Options{
		Addr:         config.RD.Host,
		DB:           config.RD.DB,
		Username:     config.RD.User,
		Password:     config.RD.Password,
		MaxRetries:   config.RD.MaxRetries,
		DialTimeout:  config.RD.DialTimeout,
		ReadTimeout:  config.RD.ReadTimeout,
		WriteTimeout: config.RD.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RD.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("%s: redis unavailable: %w", op, err)
	}

	return &Cache{client: client, ttl: config.RD.MovieTTL}, nil
}

// NewWithClient wires an existing client, used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	const op = "redisCache.GetMovieByID"

	data, err := c.client.Get(ctx, movieKey(movieID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Movie{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.Movie{}, fmt.Errorf("%s: %w", op, err)
	}

	var movie domain.Movie
	if err = json.Unmarshal(data, &movie); err != nil {
		return domain.Movie{}, fmt.Errorf("%s: corrupt cache entry: %w", op, err)
	}
	return movie, nil
}

func (c *Cache) SetMovie(ctx context.Context, movie domain.Movie) error {
	const op = "redisCache.SetMovie"

	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.client.Set(ctx, movieKey(movie.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func movieKey(movieID int) string {
	return fmt.Sprintf("movie:%d", movieID)
}
