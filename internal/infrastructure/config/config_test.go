package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
spec:
  base_url: "http://spec.example.test/miot-spec-v2"
  timeout: 10
flatten:
  pad_width: 3
  default_lang: "en"
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Spec.BaseURL != "http://spec.example.test/miot-spec-v2" {
		t.Errorf("Spec.BaseURL = %q, want %q", cfg.Spec.BaseURL, "http://spec.example.test/miot-spec-v2")
	}

	if cfg.Flatten.DefaultLang != "en" {
		t.Errorf("Flatten.DefaultLang = %q, want %q", cfg.Flatten.DefaultLang, "en")
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	// Defaults survive a partial file
	if cfg.Output.Indent != 4 {
		t.Errorf("Output.Indent = %d, want default 4", cfg.Output.Indent)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	content := `
spec:
  base_url: "http://from-file.test"
database:
  path: "/tmp/from-file.db"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("MIOTLANG_SPEC_BASE_URL", "http://from-env.test")
	t.Setenv("MIOTLANG_DATABASE_PATH", "/tmp/from-env.db")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Spec.BaseURL != "http://from-env.test" {
		t.Errorf("Spec.BaseURL = %q, want env override %q", cfg.Spec.BaseURL, "http://from-env.test")
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("Database.Path = %q, want env override %q", cfg.Database.Path, "/tmp/from-env.db")
	}
}

func TestConfig_Validate(t *testing.T) {
	// validJWTSecret is a secret that meets the 32-character minimum requirement
	validJWTSecret := "test-secret-key-at-least-32-chars!"

	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default config is valid",
			mutate:  func(_ *Config) {},
			wantErr: false,
		},
		{
			name:    "missing spec base URL",
			mutate:  func(c *Config) { c.Spec.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "non-positive spec timeout",
			mutate:  func(c *Config) { c.Spec.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "pad width too small",
			mutate:  func(c *Config) { c.Flatten.PadWidth = 0 },
			wantErr: true,
		},
		{
			name:    "pad width too large",
			mutate:  func(c *Config) { c.Flatten.PadWidth = 7 },
			wantErr: true,
		},
		{
			name:    "missing default lang",
			mutate:  func(c *Config) { c.Flatten.DefaultLang = "" },
			wantErr: true,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid MQTT QoS",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name: "API enabled without JWT secret",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.Security.Admin.PasswordHash = "$argon2id$placeholder"
			},
			wantErr: true,
		},
		{
			name: "API enabled with short JWT secret",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.Security.JWT.Secret = "too-short"
				c.Security.Admin.PasswordHash = "$argon2id$placeholder"
			},
			wantErr: true,
		},
		{
			name: "API enabled without admin password hash",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.Security.JWT.Secret = validJWTSecret
			},
			wantErr: true,
		},
		{
			name: "API enabled fully configured",
			mutate: func(c *Config) {
				c.API.Enabled = true
				c.Security.JWT.Secret = validJWTSecret
				c.Security.Admin.PasswordHash = "$argon2id$placeholder"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetSpecTimeout(t *testing.T) {
	cfg := Default()
	cfg.Spec.Timeout = 10

	if got := cfg.GetSpecTimeout().Seconds(); got != 10 {
		t.Errorf("GetSpecTimeout() = %vs, want 10s", got)
	}
}
