package main

// Notes:
// - loadEnvConfig: we test every KATEXPDF_* variable and that invalid
//   timeout and worker values are ignored with a warning, not errors.
// - warnUnknownEnvVars: typo detection and silence for known variables.
// - applyEnvConfig: environment input overrides the config file.
// - loadDotEnv: tested from a temp working directory; t.Chdir and
//   t.Setenv prevent t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-katexpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("KATEXPDF_CONFIG", "/path/to/config.yaml")
		t.Setenv("KATEXPDF_INPUT", "notes")
		t.Setenv("KATEXPDF_TIMEOUT", "2m")
		t.Setenv("KATEXPDF_WORKERS", "4")

		var buf bytes.Buffer
		cfg := loadEnvConfig(&buf)

		if cfg.ConfigPath != "/path/to/config.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.Input != "notes" {
			t.Errorf("Input = %q, want notes", cfg.Input)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
		}
		if cfg.Workers != 4 || !cfg.WorkersSet {
			t.Errorf("Workers = %d, WorkersSet = %v", cfg.Workers, cfg.WorkersSet)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected warnings: %q", buf.String())
		}
	})

	t.Run("zero workers means auto", func(t *testing.T) {
		t.Setenv("KATEXPDF_WORKERS", "0")

		cfg := loadEnvConfig(&bytes.Buffer{})
		if cfg.Workers != 0 || !cfg.WorkersSet {
			t.Errorf("Workers = %d, WorkersSet = %v", cfg.Workers, cfg.WorkersSet)
		}
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable timeout", "KATEXPDF_TIMEOUT", "soon"},
		{"negative timeout", "KATEXPDF_TIMEOUT", "-5s"},
		{"zero timeout", "KATEXPDF_TIMEOUT", "0s"},
		{"unparsable workers", "KATEXPDF_WORKERS", "many"},
		{"negative workers", "KATEXPDF_WORKERS", "-2"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			var buf bytes.Buffer
			cfg := loadEnvConfig(&buf)

			if cfg.Timeout != 0 || cfg.WorkersSet {
				t.Errorf("invalid value applied: %+v", cfg)
			}
			if !strings.Contains(buf.String(), tt.key) {
				t.Errorf("warning = %q, want mention of %s", buf.String(), tt.key)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("warns on typo", func(t *testing.T) {
		t.Setenv("KATEXPDF_WORKER", "2")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if !strings.Contains(buf.String(), "KATEXPDF_WORKER ") {
			t.Errorf("output = %q, want warning for KATEXPDF_WORKER", buf.String())
		}
	})

	t.Run("known variables are silent", func(t *testing.T) {
		t.Setenv("KATEXPDF_WORKERS", "2")
		t.Setenv("KATEXPDF_TIMEOUT", "30s")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "KATEXPDF_WORKERS") || strings.Contains(buf.String(), "KATEXPDF_TIMEOUT") {
			t.Errorf("unexpected warning: %q", buf.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("input overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Input: "from-config"}
		applyEnvConfig(&envConfig{Input: "from-env"}, cfg)
		if cfg.Input != "from-env" {
			t.Errorf("Input = %q, want from-env", cfg.Input)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Input: "from-config"}
		applyEnvConfig(&envConfig{}, cfg)
		if cfg.Input != "from-config" {
			t.Errorf("Input = %q, want from-config", cfg.Input)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadDotEnv - .env file loading
// ---------------------------------------------------------------------------

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		t.Chdir(t.TempDir())

		if err := loadDotEnv(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("loads values without overriding process env", func(t *testing.T) {
		dir := t.TempDir()
		content := "KATEXPDF_INPUT=from-dotenv\nKATEXPDF_TIMEOUT=45s\n"
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)
		t.Setenv("KATEXPDF_TIMEOUT", "10s")
		// Registers cleanup restoring the unset state after the test.
		t.Setenv("KATEXPDF_INPUT", "")
		_ = os.Unsetenv("KATEXPDF_INPUT")

		if err := loadDotEnv(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("KATEXPDF_INPUT"); got != "from-dotenv" {
			t.Errorf("KATEXPDF_INPUT = %q, want from-dotenv", got)
		}
		if got := os.Getenv("KATEXPDF_TIMEOUT"); got != "10s" {
			t.Errorf("KATEXPDF_TIMEOUT = %q, want 10s", got)
		}
	})
}
