package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the connection settings. Host, DBName, User, Password
// and Port are all required; no defaults are applied.
type Config struct {
	Host     string `yaml:"host"`
	DBName   string `yaml:"dbname"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     int    `yaml:"port"`
	SSLMode  string `yaml:"sslmode,omitempty"`
}

// Load reads settings from a YAML file, then overlays a .env file (if
// present) and PGFRAME_* environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	godotenv.Load()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PGFRAME_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PGFRAME_DBNAME"); v != "" {
		c.DBName = v
	}
	if v := os.Getenv("PGFRAME_USER"); v != "" {
		c.User = v
	}
	if v := os.Getenv("PGFRAME_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("PGFRAME_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("PGFRAME_SSLMODE"); v != "" {
		c.SSLMode = v
	}
}

// Validate reports an error naming every required field that is unset.
func (c *Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.DBName == "" {
		missing = append(missing, "dbname")
	}
	if c.User == "" {
		missing = append(missing, "user")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.Port <= 0 {
		missing = append(missing, "port")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required connection settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN renders the lib/pq keyword/value connection string.
func (c *Config) DSN() string {
	parts := []string{
		fmt.Sprintf("host=%s", c.Host),
		fmt.Sprintf("port=%d", c.Port),
		fmt.Sprintf("dbname=%s", c.DBName),
		fmt.Sprintf("user=%s", c.User),
		fmt.Sprintf("password=%s", c.Password),
	}
	if c.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", c.SSLMode))
	}
	return strings.Join(parts, " ")
}
