package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string        `mapstructure:"APP_ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	SWAPIBaseURL   string        `mapstructure:"SWAPI_BASE_URL"`
	SWAPIMaxPages  int           `mapstructure:"SWAPI_MAX_PAGES"`
	SWAPIRetries   int           `mapstructure:"SWAPI_MAX_RETRIES"`
	SWAPITimeout   time.Duration `mapstructure:"SWAPI_TIMEOUT"`
	SeedLockTTL    time.Duration `mapstructure:"SEED_LOCK_TTL"`
	SeedLockWait   time.Duration `mapstructure:"SEED_LOCK_WAIT"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
}

func LoadConfig() (config Config, err error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "sqlite:///tmp/test.db")
	v.SetDefault("MIGRATIONS_PATH", "file://migration")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SWAPI_BASE_URL", "https://swapi.dev/api")
	v.SetDefault("SWAPI_MAX_PAGES", 1)
	v.SetDefault("SWAPI_MAX_RETRIES", 3)
	v.SetDefault("SWAPI_TIMEOUT", "30s")
	v.SetDefault("SEED_LOCK_TTL", "2m")
	v.SetDefault("SEED_LOCK_WAIT", "30s")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}

// IsPostgres reports whether DatabaseURL selects the postgres dialect.
func (c Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres")
}
