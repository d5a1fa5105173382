package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	SavedFlights SavedFlightsConfig `yaml:"saved_flights"`
}

type HTTPConfig struct {
	Port           string   `yaml:"port" env:"PORT" env-default:"3001"`
	SwaggerDir     string   `yaml:"swagger_dir" env:"SWAGGER_DIR"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

func (h HTTPConfig) Address() string {
	return ":" + h.Port
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url" env:"DATABASE_URL"`
	Host         string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port         int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User         string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Name         string `yaml:"name" env:"POSTGRES_DB" env-default:"flightdatabase"`
	SSLMode      string `yaml:"ssl_mode" env:"POSTGRES_SSLMODE" env-default:"disable"`
	EnsureSchema bool   `yaml:"ensure_schema" env:"DB_ENSURE_SCHEMA"`
}

// DSN prefers an explicit URL over the individual connection fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig with an empty Addr disables the saved-flights cache.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// KafkaConfig with no brokers disables saved-flight events.
type KafkaConfig struct {
	Brokers     []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	EventsTopic string   `yaml:"events_topic" env:"KAFKA_EVENTS_TOPIC" env-default:"saved-flight-events"`
	GroupID     string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"saved-flight-notifier"`
}

type GatewayConfig struct {
	BaseURL            string  `yaml:"base_url" env:"SERPAPI_BASE_URL" env-default:"https://serpapi.com"`
	APIKey             string  `yaml:"api_key" env:"SERPAPI_KEY"`
	Engine             string  `yaml:"engine" env-default:"google_flights"`
	Language           string  `yaml:"language" env-default:"en"`
	Country            string  `yaml:"country" env-default:"us"`
	Currency           string  `yaml:"currency" env-default:"USD"`
	TimeoutSeconds     int     `yaml:"timeout_seconds" env:"SERPAPI_TIMEOUT_SECONDS"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second" env:"SERPAPI_RATE_LIMIT"`
	RateLimitBurst     int     `yaml:"rate_limit_burst" env:"SERPAPI_RATE_BURST"`
}

// Timeout is zero unless configured, leaving the transport default in place.
func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type SavedFlightsConfig struct {
	ListCacheTTLSeconds int `yaml:"list_cache_ttl_seconds" env:"SAVED_FLIGHTS_CACHE_TTL"`
}

func (s SavedFlightsConfig) ListCacheTTL() time.Duration {
	return time.Duration(s.ListCacheTTLSeconds) * time.Second
}

// defaultConfig holds the defaults whose zero value is a valid setting.
// cleanenv replaces any zero field with its env-default, so these are set
// before the file is read and carry no env-default tag.
func defaultConfig() Config {
	return Config{
		Database:     DatabaseConfig{EnsureSchema: true},
		Gateway:      GatewayConfig{RateLimitBurst: 1},
		SavedFlights: SavedFlightsConfig{ListCacheTTLSeconds: 60},
	}
}

// LoadConfig reads the YAML file at path, if present, then applies environment
// overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	return &cfg, nil
}
