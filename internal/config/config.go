package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	_ "time/tzdata"
)

const (
	CheckpointFile = "file"
	CheckpointDB   = "db"
)

type Config struct {
	DB      DBConfig      `toml:"database"`
	Session SessionConfig `toml:"session"`
	Display DisplayConfig `toml:"display"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // File path or libsql:// URL.
	AuthToken        string `toml:"auth_token"`
}

type SessionConfig struct {
	RestSeconds       int    `toml:"rest_seconds"`
	TransitionSeconds int    `toml:"transition_seconds"`
	Checkpoint        string `toml:"checkpoint"` // "file" or "db"
	CheckpointDir     string `toml:"checkpoint_dir"`
}

type DisplayConfig struct {
	Timezone string `toml:"timezone"` // IANA name; empty means local time.
}

// Dir returns ~/.config/gymtrack.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gymtrack")
}

// Returns the path to the config file.
func GetConfigPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func Default() *Config {
	return &Config{
		DB: DBConfig{
			ConnectionString: filepath.Join(Dir(), "gymtrack.db"),
		},
		Session: SessionConfig{
			RestSeconds:       90,
			TransitionSeconds: 2,
			Checkpoint:        CheckpointFile,
			CheckpointDir:     Dir(),
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("Failed to read config %s: %w", path, err)
	}

	cfg.DB.ConnectionString = ExpandPath(cfg.DB.ConnectionString)
	cfg.Session.CheckpointDir = ExpandPath(cfg.Session.CheckpointDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads the default config file, then .env and the environment on top of it.
func LoadConfig() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := Load(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv lets TURSO_DATABASE_URL / TURSO_AUTH_TOKEN pick the database. DEV_MODE=true
// forces a local file in the working directory.
func (c *Config) ApplyEnv() {
	if url := os.Getenv("TURSO_DATABASE_URL"); url != "" {
		c.DB.ConnectionString = url
	}
	if token := os.Getenv("TURSO_AUTH_TOKEN"); token != "" {
		c.DB.AuthToken = token
	}
	if os.Getenv("DEV_MODE") == "true" {
		c.DB.ConnectionString = "file:./gymtrack.db"
		c.DB.AuthToken = ""
	}
}

func (c *Config) Validate() error {
	switch c.Session.Checkpoint {
	case CheckpointFile, CheckpointDB:
	default:
		return fmt.Errorf("session.checkpoint must be %q or %q, got %q", CheckpointFile, CheckpointDB, c.Session.Checkpoint)
	}
	if c.Session.RestSeconds < 1 {
		return fmt.Errorf("session.rest_seconds must be positive")
	}
	if c.Session.TransitionSeconds < 1 {
		return fmt.Errorf("session.transition_seconds must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}
	return nil
}

// DSN is the connection string with the auth token attached for remote databases.
func (c *Config) DSN() string {
	dsn := c.DB.ConnectionString
	if c.DB.AuthToken == "" || strings.Contains(dsn, "authToken=") || !strings.Contains(dsn, "://") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "authToken=" + url.QueryEscape(c.DB.AuthToken)
}

func (c *Config) RestPeriod() time.Duration {
	return time.Duration(c.Session.RestSeconds) * time.Second
}

func (c *Config) TransitionDelay() time.Duration {
	return time.Duration(c.Session.TransitionSeconds) * time.Second
}

func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.Timezone)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Save writes c to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("Failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to create config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("Failed to write config: %w", err)
	}
	return f.Close()
}
