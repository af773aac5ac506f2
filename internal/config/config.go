package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// GatherServer holds all configuration for the gathering server.
// Values load from YAML, then environment variables (GATHERD_*) override.
type GatherServer struct {
	// Logging
	LogLevel string `yaml:"log_level" env:"GATHERD_LOG_LEVEL"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Data files
	TemplatesPath string `yaml:"templates_path" env:"GATHERD_TEMPLATES_PATH"` // empty = built-in catalog
	TerrainDir    string `yaml:"terrain_dir" env:"GATHERD_TERRAIN_DIR"`       // empty = no heightmaps

	// Gathering
	InteractionRadius    float64 `yaml:"interaction_radius" env:"GATHERD_INTERACTION_RADIUS"`
	PlacementMaxAttempts int     `yaml:"placement_max_attempts" env:"GATHERD_PLACEMENT_MAX_ATTEMPTS"`

	// Reward dispatch
	RewardWriteTimeout time.Duration `yaml:"reward_write_timeout" env:"GATHERD_REWARD_WRITE_TIMEOUT"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"GATHERD_DB_HOST"`
	Port     int    `yaml:"port" env:"GATHERD_DB_PORT"`
	User     string `yaml:"user" env:"GATHERD_DB_USER"`
	Password string `yaml:"password" env:"GATHERD_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"GATHERD_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"GATHERD_DB_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultGatherServer returns GatherServer config with sensible defaults.
func DefaultGatherServer() GatherServer {
	return GatherServer{
		LogLevel:             "info",
		TemplatesPath:        "",
		TerrainDir:           "",
		InteractionRadius:    3.0,
		PlacementMaxAttempts: 64,
		RewardWriteTimeout:   5 * time.Second,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gatherd",
			Password: "gatherd",
			DBName:   "gatherd",
			SSLMode:  "disable",
		},
	}
}

// LoadGatherServer loads config from a YAML file, then applies environment
// overrides. If the file doesn't exist, starts from defaults.
func LoadGatherServer(path string) (GatherServer, error) {
	cfg := DefaultGatherServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("applying env overrides: %w", err)
	}

	return cfg, nil
}
