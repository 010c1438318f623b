package configs

import (
	"TMDBMovieBot/configs/loader"
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type TMDBConfig struct {
	APIKey  string        `validate:"required"`
	Path    string        `validate:"required,url"`
	Timeout time.Duration `validate:"required"`
}

type TelegramConfig struct {
	Token             string        `validate:"required"`
	ConnectionTimeout time.Duration `validate:"required"`
}

type RedisConfig struct {
	Host         string `validate:"required"`
	DB           int
	User         string
	Password     string
	MaxRetries   int           `validate:"required"`
	DialTimeout  time.Duration `validate:"required"`
	ReadTimeout  time.Duration `validate:"required"`
	WriteTimeout time.Duration `validate:"required"`
	MovieTTL     time.Duration `validate:"required"`
}

type Config struct {
	TMDB TMDBConfig
	TG   TelegramConfig
	RD   RedisConfig
	Env  string
}

func MustLoad(loader loader.ConfigLoader) *Config {
	env := flag.String("env", "dev", "Environment type")
	flag.Parse()

	const op = "configs.MustLoad"
	envs, err := loader.Load()
	if err != nil {
		log.Fatalf("%s: config load failed: %+v", op, err)
	}
	cfg := NewConfig(envs, *env)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s: config validation failed: %+v", op, err)
	}

	return cfg
}

func NewConfig(envs map[string]string, env string) *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:  envs["TMDB_API_KEY"],
			Path:    getEnvOrDefault(envs["TMDB_PATH"], "https://api.themoviedb.org/3/"),
			Timeout: getEnvAsDuration(envs["TMDB_TIMEOUT"], 10*time.Second),
		},
		TG: TelegramConfig{
			Token:             envs["TELEGRAM_TOKEN"],
			ConnectionTimeout: getEnvAsDuration(envs["TELEGRAM_CONNECTION_TIMEOUT"], 5*time.Second),
		},
		RD: RedisConfig{
			Host:         envs["REDIS_HOST"],
			DB:           getEnvAsInt(envs["REDIS_DB"], 0),
			User:         envs["REDIS_USER"],
			Password:     envs["REDIS_PASSWORD"],
			MaxRetries:   getEnvAsInt(envs["REDIS_MAX_RETRIES"], 3),
			DialTimeout:  getEnvAsDuration(envs["REDIS_DIAL_TIMEOUT"], 5*time.Second),
			ReadTimeout:  getEnvAsDuration(envs["REDIS_READ_TIMEOUT"], 5*time.Second),
			WriteTimeout: getEnvAsDuration(envs["REDIS_WRITE_TIMEOUT"], 5*time.Second),
			MovieTTL:     getEnvAsDuration(envs["REDIS_MOVIE_TTL"], 24*time.Hour),
		},
		Env: env,
	}
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return v.Struct(c)
}

func getEnvOrDefault(strValue string, defaultValue string) string {
	if strValue == "" {
		return defaultValue
	}
	return strValue
}

func getEnvAsDuration(strValue string, defaultValue time.Duration) time.Duration {
	const op = "configs.getEnvAsDuration"
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(strValue string, defaultValue int) int {
	const op = "configs.getEnvAsInt"
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("%s:Invalid value for %s, using default: %v", op, strValue, defaultValue)
		return defaultValue
	}
	return value
}
