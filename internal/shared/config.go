package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/domain"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	APIBase     string
	Agency      string
	User        string
	Password    string
	ClientRPS   int
	Workers     int
	HTTPTimeout time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		APIBase:     env("TOURVISIO_BASE_URL", "https://service.maxtravel.al"),
		Agency:      env("TOURVISIO_AGENCY", "B2B"),
		User:        env("TOURVISIO_USER", ""),
		Password:    env("TOURVISIO_PASSWORD", ""),
		ClientRPS:   atoi("TOURVISIO_RPS", 5),
		Workers:     atoi("PREFETCH_WORKERS", 4),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.User == "" || c.Password == "" {
		log.Warn().Msg("TOURVISIO_USER/TOURVISIO_PASSWORD not set; automatic sign-in will fail")
	}
	return c
}

// Credential returns the default sign-in triple used for automatic login.
func (c Config) Credential() domain.Credential {
	return domain.Credential{Agency: c.Agency, User: c.User, Password: c.Password}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
