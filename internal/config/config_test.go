package config

import (
	"testing"
	"time"

	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Errorf("AppEnv = %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Errorf("DBURL = %q, want empty (memory mode)", cfg.DBURL)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %s", cfg.CacheTTL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.SchedulerEnabled {
		t.Error("SchedulerEnabled should default to false")
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_AllSportsRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ALLSPORTS_ENABLED", "true")
	t.Setenv("ALLSPORTS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ALLSPORTS_ENABLED=true without ALLSPORTS_TOKEN")
	}
}

func TestLoad_AllSportsConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ALLSPORTS_ENABLED", "true")
	t.Setenv("ALLSPORTS_TOKEN", "token-123")
	t.Setenv("ALLSPORTS_TIMEOUT", "8s")
	t.Setenv("ALLSPORTS_MAX_RETRIES", "4")
	t.Setenv("ALLSPORTS_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AllSportsEnabled {
		t.Fatalf("expected AllSportsEnabled=true")
	}
	if cfg.AllSportsToken != "token-123" {
		t.Fatalf("unexpected AllSportsToken")
	}
	if cfg.AllSportsTimeout != 8*time.Second {
		t.Fatalf("unexpected AllSportsTimeout: %s", cfg.AllSportsTimeout)
	}
	if cfg.AllSportsMaxRetries != 4 {
		t.Fatalf("unexpected AllSportsMaxRetries: %d", cfg.AllSportsMaxRetries)
	}
	if cfg.AllSportsCircuitFailureCount != 7 {
		t.Fatalf("unexpected AllSportsCircuitFailureCount: %d", cfg.AllSportsCircuitFailureCount)
	}
}

func TestLoad_CORSCannotBeEmpty(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty CORS_ALLOWED_ORIGINS")
	}
}

func TestLoad_SchedulerIntervals(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCHEDULER_ENABLED", "true")
	t.Setenv("JOB_INGEST_INTERVAL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.SchedulerEnabled {
		t.Fatalf("expected SchedulerEnabled=true")
	}
	if cfg.JobIngestInterval != 90*time.Second {
		t.Fatalf("unexpected JobIngestInterval: %s", cfg.JobIngestInterval)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com , ,https://b.example.com")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("splitCSV = %v", got)
	}
}
