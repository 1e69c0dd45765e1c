package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(t)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want release", cfg.Server.Mode)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("Store.Timeout = %v, want 5s", cfg.Store.Timeout)
	}
	if cfg.Store.Database != "taskmanager" {
		t.Errorf("Store.Database = %q", cfg.Store.Database)
	}
	if cfg.Server.ClientURL != "" || cfg.Store.URI != "" || cfg.Client.APIURL != "" {
		t.Errorf("connection settings should have no defaults: %+v", cfg)
	}
}

func TestLoad_Environment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "legacy names",
			env: map[string]string{
				"PORT":        "8080",
				"CLIENT_URL":  "http://localhost:5173",
				"MONGODB_URI": "mongodb://localhost:27017",
				"API_URL":     "http://localhost:8080/api/",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 8080 {
					t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
				}
				if cfg.Server.ClientURL != "http://localhost:5173" {
					t.Errorf("Server.ClientURL = %q", cfg.Server.ClientURL)
				}
				if cfg.Store.URI != "mongodb://localhost:27017" {
					t.Errorf("Store.URI = %q", cfg.Store.URI)
				}
				if cfg.Client.APIURL != "http://localhost:8080/api" {
					t.Errorf("Client.APIURL = %q, want trailing slash trimmed", cfg.Client.APIURL)
				}
			},
		},
		{
			name: "prefixed names win over legacy names",
			env: map[string]string{
				"TASKMANAGER_STORE_URI": "sqlite://prefixed.db",
				"MONGODB_URI":           "mongodb://legacy",
				"TASKMANAGER_LOG_LEVEL": "debug",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Store.URI != "sqlite://prefixed.db" {
					t.Errorf("Store.URI = %q, want prefixed value", cfg.Store.URI)
				}
				if cfg.Log.Level != "debug" {
					t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
				}
			},
		},
		{
			name: "durations",
			env: map[string]string{
				"TASKMANAGER_STORE_TIMEOUT": "750ms",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Store.Timeout != 750*time.Millisecond {
					t.Errorf("Store.Timeout = %v, want 750ms", cfg.Store.Timeout)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			cfg, err := Load(newViper(t))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskmanager.yaml")
	content := `
server:
  port: 7000
  client_url: https://tasks.example.com
store:
  uri: ./tasks.db
log:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newViper(t)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Server.ClientURL != "https://tasks.example.com" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Store.URI != "./tasks.db" {
		t.Errorf("Store.URI = %q", cfg.Store.URI)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer() error = %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Server.ClientURL = "http://localhost:5173"
		cfg.Store.URI = "tasks.db"
		return cfg
	}

	tests := []struct {
		name       string
		mutate     func(c *Config)
		wantFields []string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing origin", mutate: func(c *Config) { c.Server.ClientURL = "" }, wantFields: []string{"server.client_url"}},
		{name: "origin without scheme", mutate: func(c *Config) { c.Server.ClientURL = "localhost:5173" }, wantFields: []string{"server.client_url"}},
		{name: "missing store", mutate: func(c *Config) { c.Store.URI = "" }, wantFields: []string{"store.uri"}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantFields: []string{"server.port"}},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "prod" }, wantFields: []string{"server.mode"}},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantFields: []string{"log.format"}},
		{
			name: "reports every problem",
			mutate: func(c *Config) {
				c.Server.ClientURL = ""
				c.Store.URI = ""
				c.Log.Level = "loud"
			},
			wantFields: []string{"server.client_url", "store.uri", "log.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.ValidateServer()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateServer() error = %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("ValidateServer() error = %v, want ValidationErrors", err)
			}
			if len(verrs) != len(tt.wantFields) {
				t.Fatalf("got %d errors, want %d: %v", len(verrs), len(tt.wantFields), verrs)
			}
			for i, field := range tt.wantFields {
				if verrs[i].Field != field {
					t.Errorf("errors[%d].Field = %q, want %q", i, verrs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateClient(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateClient(); err == nil || !strings.Contains(err.Error(), "client.api_url") {
		t.Errorf("ValidateClient() error = %v, want client.api_url", err)
	}

	cfg.Client.APIURL = "http://localhost:5000/api"
	if err := cfg.ValidateClient(); err != nil {
		t.Errorf("ValidateClient() error = %v", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: "x", Message: "worse"},
	}
	got := errs.Error()
	if !strings.HasPrefix(got, "2 configuration errors:") {
		t.Errorf("Error() = %q", got)
	}
	if !strings.Contains(got, "1. a: bad (got: 1)") || !strings.Contains(got, "2. b: worse (got: x)") {
		t.Errorf("Error() = %q", got)
	}
}
