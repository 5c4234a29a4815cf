package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedctl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
poll_interval_ms: 100
idle_backoff_max_ms: 5000
retry:
  max_attempts: 5
  initial_ms: 250
  multiplier: 3
  max_ms: 10000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval() != 100*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 100ms", cfg.PollInterval())
	}
	if cfg.IdleBackoffMax() != 5*time.Second {
		t.Errorf("IdleBackoffMax() = %v, want 5s", cfg.IdleBackoffMax())
	}

	p := cfg.RetryPolicy()
	if p.MaxAttempts != 5 || p.Initial != 250*time.Millisecond || p.Multiplier != 3 || p.Max != 10*time.Second {
		t.Errorf("unexpected retry policy: %+v", p)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `retry: {max_attempts: 2}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.PollIntervalMs != def.PollIntervalMs || cfg.IdleBackoffMaxMs != def.IdleBackoffMaxMs {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non-positive poll interval", "poll_interval_ms: 0"},
		{"backoff below poll interval", "poll_interval_ms: 100\nidle_backoff_max_ms: 10"},
		{"negative attempts", "retry: {max_attempts: -1}"},
		{"negative multiplier", "retry: {multiplier: -2}"},
		{"not yaml", "{{{"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
