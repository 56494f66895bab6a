package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string        `envconfig:"PORT" default:"8080"`
	DBDSN     string        `envconfig:"DB_DSN" default:"shopstack.db"` // sqlite file in project root
	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-only-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	LogFile   string        `envconfig:"LOG_FILE" default:"./shopstack.log"`
	SeedDemo  bool          `envconfig:"SEED_DEMO" default:"true"`
}

// Load reads .env (if present) and the environment. Secrets are not echoed.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}

	log.Printf("[config] PORT=%s DB_DSN=%s TOKEN_TTL=%s LOG_FILE=%s SEED_DEMO=%v",
		cfg.Port, cfg.DBDSN, cfg.TokenTTL, cfg.LogFile, cfg.SeedDemo)
	return cfg
}
