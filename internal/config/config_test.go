package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine != "auto" || cfg.Theme != "mpe" || cfg.Math != "mathjax" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.PageSize != "a4" || cfg.Margin != "20mm" || cfg.Timeout != 30 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.MermaidEnabled() {
		t.Error("mermaid should default to enabled")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides merge onto defaults", func(t *testing.T) {
		path := writeConfig(t, "engine: static\ntheme: github\nmermaid: false\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != "static" || cfg.Theme != "github" {
			t.Errorf("got %+v", cfg)
		}
		if cfg.MermaidEnabled() {
			t.Error("mermaid: false not honored")
		}
		// Untouched fields keep their defaults.
		if cfg.Math != "mathjax" || cfg.PageSize != "a4" {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := writeConfig(t, "engine: auto\nengnie: typo\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("expected ErrConfigParse, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("expected ErrEmptyConfigName, got %v", err)
		}
	})

	t.Run("unresolvable name lists tried paths", func(t *testing.T) {
		_, err := LoadConfig("definitely-not-a-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("negative timeout rejected", func(t *testing.T) {
		path := writeConfig(t, "timeout: -5\n")

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("missing css path rejected", func(t *testing.T) {
		path := writeConfig(t, "cssPath: /no/such/file.css\n")

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected validation error")
		}
	})
}
