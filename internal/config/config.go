package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Coros    CorosConfig    `yaml:"coros"`
	Sessions SessionsConfig `yaml:"sessions"`
	Auth     AuthConfig     `yaml:"auth"`
	Tailnet  TailnetConfig  `yaml:"tailnet"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type CorosConfig struct {
	// Region selects the COROS API endpoint: global, eu, or cn.
	Region string `yaml:"region"`
}

// SessionsConfig selects where COROS session tokens live. Backend memory
// keeps them in-process (stdio mode), sqlite persists them to a local file,
// postgres shares them between replicas.
type SessionsConfig struct {
	Backend string         `yaml:"backend"`
	Path    string         `yaml:"path"`
	DB      DatabaseConfig `yaml:"db"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// TailnetConfig exposes the HTTP listener on a Tailscale network instead of
// a plain TCP port.
type TailnetConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
	AuthKey  string `yaml:"auth_key"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Default returns the configuration used when no config file is given:
// global region, in-memory sessions, localhost HTTP.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8812},
		Coros:    CorosConfig{Region: "global"},
		Sessions: SessionsConfig{Backend: "memory"},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix COROS_MCP_ and underscore-separated paths:
//
//	COROS_MCP_SERVER_HOST, COROS_MCP_SERVER_PORT, COROS_MCP_REGION,
//	COROS_MCP_SESSIONS_BACKEND, COROS_MCP_SESSIONS_PATH,
//	COROS_MCP_DB_HOST, COROS_MCP_DB_PORT, COROS_MCP_DB_NAME,
//	COROS_MCP_DB_USER, COROS_MCP_DB_PASSWORD, COROS_MCP_DB_SSLMODE,
//	COROS_MCP_AUTH_API_KEY,
//	COROS_MCP_TS_HOSTNAME, COROS_MCP_TS_AUTHKEY
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COROS_MCP_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("COROS_MCP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COROS_MCP_REGION"); v != "" {
		cfg.Coros.Region = v
	}
	if v := os.Getenv("COROS_MCP_SESSIONS_BACKEND"); v != "" {
		cfg.Sessions.Backend = v
	}
	if v := os.Getenv("COROS_MCP_SESSIONS_PATH"); v != "" {
		cfg.Sessions.Path = v
	}
	if v := os.Getenv("COROS_MCP_DB_HOST"); v != "" {
		cfg.Sessions.DB.Host = v
	}
	if v := os.Getenv("COROS_MCP_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Sessions.DB.Port = port
		}
	}
	if v := os.Getenv("COROS_MCP_DB_NAME"); v != "" {
		cfg.Sessions.DB.Name = v
	}
	if v := os.Getenv("COROS_MCP_DB_USER"); v != "" {
		cfg.Sessions.DB.User = v
	}
	if v := os.Getenv("COROS_MCP_DB_PASSWORD"); v != "" {
		cfg.Sessions.DB.Password = v
	}
	if v := os.Getenv("COROS_MCP_DB_SSLMODE"); v != "" {
		cfg.Sessions.DB.SSLMode = v
	}
	if v := os.Getenv("COROS_MCP_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("COROS_MCP_TS_HOSTNAME"); v != "" {
		cfg.Tailnet.Enabled = true
		cfg.Tailnet.Hostname = v
	}
	if v := os.Getenv("COROS_MCP_TS_AUTHKEY"); v != "" {
		cfg.Tailnet.AuthKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Coros.Region {
	case "global", "eu", "cn":
	default:
		return fmt.Errorf("coros.region must be global, eu, or cn")
	}
	switch c.Sessions.Backend {
	case "", "memory":
	case "sqlite":
		if c.Sessions.Path == "" {
			return fmt.Errorf("sessions.path is required for the sqlite backend")
		}
	case "postgres":
		if c.Sessions.DB.Host == "" {
			return fmt.Errorf("sessions.db.host is required for the postgres backend")
		}
		if c.Sessions.DB.Port == 0 {
			return fmt.Errorf("sessions.db.port is required for the postgres backend")
		}
		if c.Sessions.DB.Name == "" {
			return fmt.Errorf("sessions.db.name is required for the postgres backend")
		}
		if c.Sessions.DB.User == "" {
			return fmt.Errorf("sessions.db.user is required for the postgres backend")
		}
	default:
		return fmt.Errorf("sessions.backend must be memory, sqlite, or postgres")
	}
	return nil
}
