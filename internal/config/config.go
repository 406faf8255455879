package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: ROUTE_DATABASE__URL sets database.url.
const EnvPrefix = "ROUTE_"

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Routing  RoutingConfig  `json:"routing"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	Addr              string        `json:"addr"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	// PlanRate limits plan calculations per second across all clients.
	// Zero disables the limit.
	PlanRate  float64 `json:"plan_rate"`
	PlanBurst int     `json:"plan_burst"`
}

type DatabaseConfig struct {
	URL             string        `json:"url"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// RedisConfig selects the plan store. An empty Addr keeps plans in memory.
type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	PlanTTL  time.Duration `json:"plan_ttl"`
}

type RoutingConfig struct {
	// GeographySource is "builtin" for the bundled Kocaeli table or
	// "database" to load stations and distances at start-up.
	GeographySource  string  `json:"geography_source"`
	RentalCapacity   float64 `json:"rental_capacity"`
	RentalCost       float64 `json:"rental_cost"`
	RentalIDStart    int     `json:"rental_id_start"`
	FuelCostPerKM    float64 `json:"fuel_cost_per_km"`
	Sequencer        string  `json:"sequencer"`
	TwoOptIterations int     `json:"two_opt_iterations"`
	Concurrency      int     `json:"concurrency"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			PlanRate:          5,
			PlanBurst:         10,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{PlanTTL: time.Hour},
		Routing: RoutingConfig{
			GeographySource:  "builtin",
			RentalCapacity:   500,
			RentalCost:       200,
			RentalIDStart:    1000,
			FuelCostPerKM:    1.0,
			Sequencer:        "greedy",
			TwoOptIterations: 50,
			Concurrency:      4,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads an optional YAML or JSON file at path, then applies ROUTE_
// environment overrides on top of Default. DATABASE_URL and REDIS_ADDR are
// honoured when the prefixed keys are not set.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("load config: unsupported format %q", filepath.Ext(path))
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: env overrides: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Routing.GeographySource {
	case "builtin", "database":
	default:
		errs = append(errs, fmt.Errorf("routing.geography_source must be builtin or database, got %q", c.Routing.GeographySource))
	}

	switch c.Routing.Sequencer {
	case "greedy", "two_opt":
	default:
		errs = append(errs, fmt.Errorf("routing.sequencer must be greedy or two_opt, got %q", c.Routing.Sequencer))
	}

	if c.Routing.RentalCapacity <= 0 {
		errs = append(errs, errors.New("routing.rental_capacity must be positive"))
	}
	if c.Routing.RentalCost < 0 {
		errs = append(errs, errors.New("routing.rental_cost must not be negative"))
	}
	if c.Routing.FuelCostPerKM < 0 {
		errs = append(errs, errors.New("routing.fuel_cost_per_km must not be negative"))
	}
	if c.Routing.RentalIDStart <= 0 {
		errs = append(errs, errors.New("routing.rental_id_start must be positive"))
	}
	if c.Routing.Concurrency < 1 {
		errs = append(errs, errors.New("routing.concurrency must be at least 1"))
	}
	if c.Server.PlanRate < 0 {
		errs = append(errs, errors.New("server.plan_rate must not be negative"))
	}
	if c.Server.PlanRate > 0 && c.Server.PlanBurst < 1 {
		errs = append(errs, errors.New("server.plan_burst must be at least 1 when plan_rate is set"))
	}

	return errors.Join(errs...)
}

// Get returns the environment variable key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
