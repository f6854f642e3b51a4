// Package config resuelve la configuración del servicio: defaults, archivo YAML opcional y env.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "cattle.db"
)

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Auth    Auth    `yaml:"auth"`
	Reports Reports `yaml:"reports"`
	Paging  Paging  `yaml:"paging"`
}

type HTTP struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Storage struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// Auth apunta al servicio externo de credenciales. BaseURL vacío = modo dev (headers X-Debug-*).
type Auth struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	APIKeyHeader string        `yaml:"api_key_header"`
	Timeout      time.Duration `yaml:"timeout"`
}

type Reports struct {
	UpcomingVaccinationDays int `yaml:"upcoming_vaccination_days"`
	DashboardUpcomingDays   int `yaml:"dashboard_upcoming_days"`
	FollowUpDays            int `yaml:"follow_up_days"`
	RecentHealthDays        int `yaml:"recent_health_days"`
}

type Paging struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Storage: Storage{Driver: DriverMemory},
		Reports: Reports{
			UpcomingVaccinationDays: 30,
			DashboardUpcomingDays:   7,
			FollowUpDays:            7,
			RecentHealthDays:        30,
		},
		Paging: Paging{DefaultLimit: 20, MaxLimit: 100},
	}
}

// Load aplica en orden: Default, archivo (path o CONFIG_FILE), env. path vacío sin CONFIG_FILE omite el archivo.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(&cfg.HTTP.Addr, "PORT")
	set(&cfg.Storage.Driver, "DB_DRIVER")
	set(&cfg.Storage.DSN, "DB_DSN")
	set(&cfg.Log.Level, "LOG_LEVEL")
	set(&cfg.Log.Format, "LOG_FORMAT")
	set(&cfg.Log.App, "APP_NAME")
	set(&cfg.Auth.BaseURL, "AUTH_BASE_URL")
	set(&cfg.Auth.APIKey, "AUTH_API_KEY")

	// PORT=8080 también vale
	if a := cfg.HTTP.Addr; a != "" && !strings.Contains(a, ":") {
		cfg.HTTP.Addr = ":" + a
	}
	// compat con el deploy anterior: DB_DSN sin DB_DRIVER era postgres
	if strings.TrimSpace(os.Getenv("DB_DRIVER")) == "" && cfg.Storage.Driver == DriverMemory && strings.TrimSpace(os.Getenv("DB_DSN")) != "" {
		cfg.Storage.Driver = DriverPostgres
	}
}

func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			c.Storage.DSN = defaultSQLitePath
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q (want memory|postgres|sqlite)", c.Storage.Driver)
	}

	if c.HTTP.Addr == "" {
		return fmt.Errorf("config: http.addr is required")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return fmt.Errorf("config: http timeouts must not be negative")
	}

	for name, v := range map[string]int{
		"reports.upcoming_vaccination_days": c.Reports.UpcomingVaccinationDays,
		"reports.dashboard_upcoming_days":   c.Reports.DashboardUpcomingDays,
		"reports.follow_up_days":            c.Reports.FollowUpDays,
		"reports.recent_health_days":        c.Reports.RecentHealthDays,
	} {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", name, v)
		}
	}

	if c.Paging.DefaultLimit <= 0 || c.Paging.MaxLimit <= 0 {
		return fmt.Errorf("config: paging limits must be positive")
	}
	if c.Paging.DefaultLimit > c.Paging.MaxLimit {
		return fmt.Errorf("config: paging.default_limit (%d) exceeds paging.max_limit (%d)", c.Paging.DefaultLimit, c.Paging.MaxLimit)
	}
	return nil
}
