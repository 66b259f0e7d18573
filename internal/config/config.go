package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Media       MediaConfig
	Reservation ReservationConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
	MaxConns int32
	// Migrate applies the embedded schema at startup.
	Migrate bool
}

// DSN is the connection string for pgxpool.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type MediaConfig struct {
	Root string
	URL  string
	// CloudinaryURL switches image storage to Cloudinary when set.
	CloudinaryURL string
}

type ReservationConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	IdempotencyTTL time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	var (
		cfg Config
		err error
	)

	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	if cfg.Server.Port, err = getInt("SERVER_PORT", 8080); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	cfg.Postgres.Host = getEnv("POSTGRES_HOST", "localhost")
	if cfg.Postgres.Port, err = getInt("POSTGRES_PORT", 5432); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	for _, req := range []struct {
		key string
		dst *string
	}{
		{"POSTGRES_USER", &cfg.Postgres.User},
		{"POSTGRES_PASSWORD", &cfg.Postgres.Password},
		{"POSTGRES_DB", &cfg.Postgres.Name},
		{"JWT_SECRET", &cfg.Auth.JWTSecret},
	} {
		if *req.dst = os.Getenv(req.key); *req.dst == "" {
			return nil, fmt.Errorf("%s: missing %s", op, req.key)
		}
	}
	cfg.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", "disable")
	maxConns, err := getInt("POSTGRES_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	cfg.Postgres.MaxConns = int32(maxConns)
	if cfg.Postgres.Migrate, err = getBool("POSTGRES_MIGRATE", false); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if cfg.Auth.TokenTTL, err = getDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	cfg.Media.Root = getEnv("MEDIA_ROOT", "media")
	cfg.Media.URL = getEnv("MEDIA_URL", "/media")
	cfg.Media.CloudinaryURL = os.Getenv("CLOUDINARY_URL")

	if cfg.Reservation.RateLimit, err = getInt("RESERVATION_RATE_LIMIT", 10); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if cfg.Reservation.RateWindow, err = getDuration("RESERVATION_RATE_WINDOW", time.Minute); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if cfg.Reservation.IdempotencyTTL, err = getDuration("IDEMPOTENCY_TTL", 2*time.Hour); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
