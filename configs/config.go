package configs

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"8000"`
	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBSource     string        `envconfig:"DB_SOURCE" default:"appuaifood.db"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"changeme"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"24h"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	AllowOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`

	// empty disables the kafka publisher
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"order-events"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
