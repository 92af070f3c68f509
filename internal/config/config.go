package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the spell engine host.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// CatalogPath points at a YAML spell catalog; empty uses the
	// embedded default set.
	CatalogPath string `yaml:"catalog_path"`

	// TickInterval is the maintenance tick period in seconds.
	TickInterval float64 `yaml:"tick_interval"`

	Engine   EngineConfig   `yaml:"engine"`
	Database DatabaseConfig `yaml:"database"`
}

// EngineConfig tunes the engine's numeric behavior.
type EngineConfig struct {
	CombatRegenRate       float64 `yaml:"combat_regen_rate"` // MP/s in combat
	FieldRegenRate        float64 `yaml:"field_regen_rate"`  // MP/s out of combat
	DefaultEffectDuration float64 `yaml:"default_effect_duration"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the optional
// state store. State persistence is skipped when Host is empty.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:     "info",
		TickInterval: 1,
		Engine: EngineConfig{
			CombatRegenRate:       0.5,
			FieldRegenRate:        2.0,
			DefaultEffectDuration: 30,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
