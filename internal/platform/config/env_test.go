package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"3s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("Port = %d, want %d", cfg.Port, 123)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, 3*time.Second)
	}
}

func TestParseEnvReadsPrefixedVariables(t *testing.T) {
	t.Setenv("FIREHORSE_TEST_PORT", "8443")
	t.Setenv("TEST_PORT", "9999")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 8443 {
		t.Fatalf("Port = %d, want %d", cfg.Port, 8443)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("FIREHORSE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
