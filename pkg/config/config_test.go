package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sampleConfig struct {
	Name    string        `envconfig:"NAME" default:"fallback"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"1s"`
	Rounds  int           `split_words:"true"`
}

// Not parallel: these tests mutate the process environment.

func TestNewReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "CFGTEST_NAME=from-file\nCFGTEST_ROUNDS=3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("CFGTEST_TIMEOUT", "5s")
	t.Cleanup(func() {
		os.Unsetenv("CFGTEST_NAME")
		os.Unsetenv("CFGTEST_ROUNDS")
		SetEnvFile("")
	})

	SetEnvFile(path)
	conf, err := New[sampleConfig]("CFGTEST")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Name != "from-file" || conf.Rounds != 3 {
		t.Fatalf("unexpected config: %#v", conf)
	}
	if conf.Timeout != 5*time.Second {
		t.Fatalf("environment must win over defaults, got %s", conf.Timeout)
	}
}

func TestNewMissingExplicitFile(t *testing.T) {
	t.Cleanup(func() { SetEnvFile("") })

	SetEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	if _, err := New[sampleConfig]("CFGMISSING"); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestNewDefaults(t *testing.T) {
	conf, err := New[sampleConfig]("CFGDEFAULT")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Name != "fallback" || conf.Timeout != time.Second {
		t.Fatalf("unexpected defaults: %#v", conf)
	}
}
