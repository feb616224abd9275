package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	RecoveryRateLimitAllowedPerMin int `toml:"recovery_rate_limit_allowed_per_min"`
	// stored sessions never change, deleting one evicts it
	SessionCacheSizeMB     int `toml:"session_cache_size_mb"`
	SessionCacheTTLSeconds int `toml:"session_cache_ttl_seconds"`

	Recovery Recovery `toml:"recovery"`
}

// Recovery holds the scoring constants. Half-lives and rest hours are per muscle code.
type Recovery struct {
	DefaultWindowDays    int                `toml:"default_window_days"`
	MaxWindowDays        int                `toml:"max_window_days"`
	FatigueScale         float64            `toml:"fatigue_scale"`
	DefaultHalfLifeHours float64            `toml:"default_half_life_hours"`
	HalfLifeHours        map[string]float64 `toml:"half_life_hours"`
	DefaultRestHours     float64            `toml:"default_rest_hours"`
	RestHours            map[string]float64 `toml:"rest_hours"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file, picks the env section, fills defaults and validates it.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RecoveryRateLimitAllowedPerMin == 0 {
		c.RecoveryRateLimitAllowedPerMin = 120
	}
	if c.SessionCacheSizeMB == 0 {
		c.SessionCacheSizeMB = 8
	}
	if c.SessionCacheTTLSeconds == 0 {
		c.SessionCacheTTLSeconds = 3600
	}

	r := &c.Recovery
	if r.DefaultWindowDays == 0 {
		r.DefaultWindowDays = 7
	}
	if r.MaxWindowDays == 0 {
		r.MaxWindowDays = 30
	}
	if r.FatigueScale == 0 {
		r.FatigueScale = 100
	}
	if r.DefaultHalfLifeHours == 0 {
		r.DefaultHalfLifeHours = 48
	}
	if r.HalfLifeHours == nil {
		r.HalfLifeHours = map[string]float64{"legs": 72}
	}
	if r.DefaultRestHours == 0 {
		r.DefaultRestHours = 36
	}

	if r.RestHours == nil {
		r.RestHours = map[string]float64{
			"chest":     60,
			"back":      60,
			"shoulders": 60,
			"legs":      60,
			"core":      60,
			"cardio":    24,
		}
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be set")
	}
	if c.SessionCacheSizeMB < 0 || c.SessionCacheTTLSeconds < 0 {
		return errors.New("session cache size and ttl must not be negative")
	}

	r := c.Recovery
	if r.DefaultWindowDays < 1 {
		return errors.New("recovery.default_window_days must be positive")
	}
	if r.MaxWindowDays < r.DefaultWindowDays {
		return errors.New("recovery.max_window_days must not be below default_window_days")
	}
	if r.FatigueScale <= 0 {
		return errors.New("recovery.fatigue_scale must be positive")
	}
	if r.DefaultHalfLifeHours <= 0 {
		return errors.New("recovery.default_half_life_hours must be positive")
	}
	for code, hours := range r.HalfLifeHours {
		if hours <= 0 {
			return fmt.Errorf("recovery.half_life_hours.%s must be positive", code)
		}
	}
	if r.DefaultRestHours <= 0 {
		return errors.New("recovery.default_rest_hours must be positive")
	}
	for code, hours := range r.RestHours {
		if hours <= 0 || hours > 240 {
			return fmt.Errorf("recovery.rest_hours.%s must be in (0, 240]", code)
		}
	}
	return nil
}
