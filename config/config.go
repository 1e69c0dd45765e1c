package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName names the config directory and the env prefix.
const AppName = "taskmanager"

// Config is the complete taskmanager configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig controls the API service.
type ServerConfig struct {
	// Port is the TCP port to listen on (default: 5000)
	Port int `mapstructure:"port"`
	// ClientURL is the single origin allowed by CORS
	ClientURL string `mapstructure:"client_url"`
	// Mode is the gin mode: "debug", "release" or "test"
	Mode string `mapstructure:"mode"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects and tunes the task store.
type StoreConfig struct {
	// URI picks the backend: mongodb://, googletasks://<list>, sqlite://<path> or a path
	URI string `mapstructure:"uri"`
	// Database is the MongoDB database name
	Database string `mapstructure:"database"`
	// CredentialsDir holds oauth_client.json and token.json for Google Tasks
	CredentialsDir string `mapstructure:"credentials_dir"`
	// Timeout bounds each remote store call
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClientConfig controls the terminal client.
type ClientConfig struct {
	// APIURL is the API base URL, including the /api prefix
	APIURL string `mapstructure:"api_url"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format is auto, json or text
	Format string `mapstructure:"format"`
}

// Default returns the built-in defaults. Only the port and tuning knobs have
// defaults; connection strings and origins must be configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Database:       "taskmanager",
			CredentialsDir: ConfigDir(),
			Timeout:        5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/taskmanager or $HOME/.config/taskmanager.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// envAliases are the unprefixed variable names older deployments set. The
// prefixed TASKMANAGER_* name is always tried first.
var envAliases = map[string][]string{
	"server.port":       {"PORT"},
	"server.client_url": {"CLIENT_URL"},
	"server.mode":       {"GIN_MODE"},
	"store.uri":         {"STORE_URI", "MONGODB_URI"},
	"client.api_url":    {"API_URL", "VITE_API_URL"},
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.mode", defaults.Server.Mode)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("store.database", defaults.Store.Database)
	v.SetDefault("store.credentials_dir", defaults.Store.CredentialsDir)
	v.SetDefault("store.timeout", defaults.Store.Timeout)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	// TASKMANAGER_STORE_URI for store.uri, and so on
	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{envName(key)}, aliases...)
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
}

func envName(key string) string {
	return strings.ToUpper(AppName + "_" + strings.ReplaceAll(key, ".", "_"))
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.ClientURL = strings.TrimSpace(cfg.Server.ClientURL)
	cfg.Store.URI = strings.TrimSpace(cfg.Store.URI)
	cfg.Client.APIURL = strings.TrimRight(strings.TrimSpace(cfg.Client.APIURL), "/")
	return cfg, nil
}
