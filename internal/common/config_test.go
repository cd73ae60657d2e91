package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultStartingCash(t *testing.T) {
	cfg := NewDefaultConfig()
	want := decimal.RequireFromString("10000.00")
	if !cfg.Account.GetStartingCash().Equal(want) {
		t.Errorf("starting cash default = %s, want %s", cfg.Account.GetStartingCash(), want)
	}
}

func TestConfig_StartingCashInvalidFallsBack(t *testing.T) {
	cfg := &Config{Account: AccountConfig{StartingCash: "not-a-number"}}
	want := decimal.NewFromInt(10000)
	if !cfg.Account.GetStartingCash().Equal(want) {
		t.Errorf("starting cash = %s for invalid input, want %s", cfg.Account.GetStartingCash(), want)
	}
}

func TestConfig_NegativeStartingCashFallsBack(t *testing.T) {
	cfg := &Config{Account: AccountConfig{StartingCash: "-50.00"}}
	want := decimal.NewFromInt(10000)
	if !cfg.Account.GetStartingCash().Equal(want) {
		t.Errorf("starting cash = %s for negative input, want %s", cfg.Account.GetStartingCash(), want)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("PAPERTRADE_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_StartingCashEnvOverride(t *testing.T) {
	t.Setenv("PAPERTRADE_STARTING_CASH", "2500.50")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	want := decimal.RequireFromString("2500.50")
	if !cfg.Account.GetStartingCash().Equal(want) {
		t.Errorf("starting cash = %s after env override, want %s", cfg.Account.GetStartingCash(), want)
	}
}

func TestConfig_QuoteTTL(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Market.GetQuoteTTL() != 5*time.Minute {
		t.Errorf("quote TTL default = %s, want 5m", cfg.Market.GetQuoteTTL())
	}

	cfg.Market.QuoteTTL = "90s"
	if cfg.Market.GetQuoteTTL() != 90*time.Second {
		t.Errorf("quote TTL = %s, want 90s", cfg.Market.GetQuoteTTL())
	}

	cfg.Market.QuoteTTL = "bogus"
	if cfg.Market.GetQuoteTTL() != FreshnessQuote {
		t.Errorf("quote TTL = %s for invalid input, want %s", cfg.Market.GetQuoteTTL(), FreshnessQuote)
	}
}

func TestLoadConfig_FileMergeAndMissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papertrade.toml")
	content := `
environment = "production"

[server]
port = 9999

[account]
starting_cash = "500.00"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(filepath.Join(dir, "does-not-exist.toml"), path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.Account.GetStartingCash().Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("starting cash = %s, want 500.00", cfg.Account.GetStartingCash())
	}
	// Unset fields keep defaults
	if cfg.Clients.Yahoo.RateLimit != 5 {
		t.Errorf("Yahoo.RateLimit = %d, want default 5", cfg.Clients.Yahoo.RateLimit)
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, time.Hour) {
		t.Error("zero timestamp should never be fresh")
	}
	if !IsFresh(time.Now().Add(-time.Minute), 5*time.Minute) {
		t.Error("1 minute old should be fresh within 5m TTL")
	}
	if IsFresh(time.Now().Add(-10*time.Minute), 5*time.Minute) {
		t.Error("10 minutes old should be stale with 5m TTL")
	}
}

func TestIsFreshAt(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	if IsFreshAt(time.Time{}, time.Hour, now) {
		t.Error("zero timestamp should never be fresh")
	}
	if !IsFreshAt(now.Add(-time.Minute), 5*time.Minute, now) {
		t.Error("1 minute old should be fresh within 5m TTL")
	}
	if IsFreshAt(now.Add(-5*time.Minute), 5*time.Minute, now) {
		t.Error("exactly TTL old should be stale")
	}
}
