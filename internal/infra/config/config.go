package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Storage    StorageConfig    `yaml:"storage"`
	Registry   RegistryConfig   `yaml:"registry"`
	Weather    WeatherConfig    `yaml:"weather"`
	ImageCheck ImageCheckConfig `yaml:"imageCheck"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// StorageConfig selects the closet/outfit/rating persistence backend.
// An empty DSN keeps everything in memory.
type StorageConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
	MinConns    int32  `yaml:"minConns"`
}

// RegistryConfig selects the id registry backend used for
// reserve-if-absent id generation.
type RegistryConfig struct {
	ValkeyEnabled bool   `yaml:"valkeyEnabled"`
	ValkeyAddr    string `yaml:"valkeyAddr"`
	KeyPrefix     string `yaml:"keyPrefix"`
}

// WeatherConfig contains the outbound provider settings for the
// recommendation flow.
type WeatherConfig struct {
	OpenWeatherAPIKey  string `yaml:"openWeatherApiKey"`
	OpenWeatherBaseURL string `yaml:"openWeatherBaseUrl"`
	GeoBaseURL         string `yaml:"geoBaseUrl"`
}

// ImageCheckConfig controls the photo reachability probe.
type ImageCheckConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("REGISTRY_VALKEY_ENABLED"); v != "" {
		cfg.Registry.ValkeyEnabled = isTrue(v)
	}
	if v := os.Getenv("REGISTRY_VALKEY_ADDR"); v != "" {
		cfg.Registry.ValkeyAddr = v
	}
	if v := os.Getenv("REGISTRY_KEY_PREFIX"); v != "" {
		cfg.Registry.KeyPrefix = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.OpenWeatherAPIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.OpenWeatherBaseURL = v
	}
	if v := os.Getenv("GEO_BASE_URL"); v != "" {
		cfg.Weather.GeoBaseURL = v
	}
	if v := os.Getenv("IMAGE_CHECK_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.ImageCheck.Timeout = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Storage: StorageConfig{
			MaxConns: 4,
			MinConns: 0,
		},
		Registry: RegistryConfig{
			KeyPrefix: "closet:ids",
		},
		Weather: WeatherConfig{
			OpenWeatherBaseURL: "https://api.openweathermap.org/data/2.5/weather",
			GeoBaseURL:         "https://ipinfo.io",
		},
		ImageCheck: ImageCheckConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Registry.ValkeyEnabled && strings.TrimSpace(c.Registry.ValkeyAddr) == "" {
		return errors.New("registry.valkeyAddr cannot be empty when the valkey registry is enabled")
	}
	if c.Weather.OpenWeatherBaseURL == "" {
		return errors.New("weather.openWeatherBaseUrl cannot be empty")
	}
	if c.Weather.GeoBaseURL == "" {
		return errors.New("weather.geoBaseUrl cannot be empty")
	}
	if c.ImageCheck.Timeout <= 0 {
		return errors.New("imageCheck.timeout must be positive")
	}
	return nil
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
