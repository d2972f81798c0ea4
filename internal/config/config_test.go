package config_test

import (
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/employee-intake/internal/config"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "UPLOAD_DIR", "LOG_LEVEL", "LIMITER_RPS", "LIMITER_BURST", "LIMITER_ENABLED"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := config.Config{
		Port:      "8080",
		DBPath:    "intake.db",
		UploadDir: "uploads",
		LogLevel:  slog.LevelInfo,
		Limiter:   config.Limiter{RPS: 2, Burst: 4, Enabled: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LIMITER_ENABLED", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != slog.LevelDebug || cfg.Limiter.Enabled {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoad_BadNumber(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LIMITER_BURST", "many")
	if _, err := config.Load(); err == nil {
		t.Error("expected error")
	}
}
