package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Run("loads server and options", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vela.json")
		content := `{"server": "https://chat.example.com", "options": {"debug": true}}`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}

		if cfg.Server != "https://chat.example.com" {
			t.Errorf("Server = %q, want %q", cfg.Server, "https://chat.example.com")
		}
		if !cfg.Options.Debug {
			t.Error("Options.Debug = false, want true")
		}
	})

	t.Run("applies default server", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vela.json")
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}

		if cfg.Server != DefaultServerURL {
			t.Errorf("Server = %q, want default %q", cfg.Server, DefaultServerURL)
		}
		if cfg.Options == nil || cfg.Options.DataDir == "" {
			t.Error("expected DataDir default to be applied")
		}
	})

	t.Run("fails on malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vela.json")
		if err := os.WriteFile(path, []byte(`{nope`), 0o600); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		if _, err := LoadFromFile(path); err == nil {
			t.Error("expected error for malformed config")
		}
	})
}

func TestIdentityURL(t *testing.T) {
	cfg := &Config{Server: "http://localhost:8000"}
	if got := cfg.IdentityURL(); got != "http://localhost:8000" {
		t.Errorf("IdentityURL() = %q, want server fallback", got)
	}

	cfg.Identity = "https://id.example.com"
	if got := cfg.IdentityURL(); got != "https://id.example.com" {
		t.Errorf("IdentityURL() = %q, want explicit identity", got)
	}
}

func TestMergeConfig(t *testing.T) {
	dst := &Config{Server: "http://global", Options: &Options{DataDir: "/global"}}
	src := &Config{Server: "http://project", Options: &Options{Debug: true}}

	mergeConfig(dst, src)

	if dst.Server != "http://project" {
		t.Errorf("Server = %q, project config should win", dst.Server)
	}
	if !dst.Options.Debug {
		t.Error("Debug should be merged from project config")
	}
	if dst.Options.DataDir != "/global" {
		t.Errorf("DataDir = %q, should keep global value", dst.Options.DataDir)
	}
}
