package config

import (
	"context"
	"log"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config aggregates all runtime settings, populated from the environment.
type Config struct {
	Port     int    `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BaseURL is the public address used in notification links.
	BaseURL string `env:"BASE_URL, default=http://localhost:8080"`

	JWTSecret  string        `env:"JWT_SECRET, required"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=720h"`

	Mongo MongoConfig `env:", prefix=MONGO_"`
	Redis RedisConfig `env:", prefix=REDIS_"`
	SMTP  SMTPConfig  `env:", prefix=SMTP_"`
}

type MongoConfig struct {
	URI      string `env:"URI, default=mongodb://localhost:27017"`
	Database string `env:"DATABASE, default=udyog_jagat"`
}

type RedisConfig struct {
	Addr string `env:"ADDR, default=localhost:6379"`
	DB   int    `env:"DB, default=0"`
}

type SMTPConfig struct {
	Host     string `env:"HOST, default=localhost"`
	Port     int    `env:"PORT, default=587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM, default=Udyog Jagat <no-reply@udyogjagat.example>"`
}

// Load reads the configuration from the environment and terminates the
// process when a required value is missing.
func Load(ctx context.Context) *Config {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return &cfg
}
