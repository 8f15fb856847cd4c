package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("AUTH_ACCESS_SECRET", "")
	t.Setenv("AUTH_REFRESH_SECRET", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, warnings, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(warnings) == 0 {
		t.Error("expected warnings for defaulted required variables")
	}
	if cfg.Auth.AccessSecret == "" {
		t.Error("access secret not defaulted")
	}
	// A warned-about default has to be usable, not just non-fatal.
	if !strings.HasPrefix(cfg.Postgres.DSN, "postgres://") {
		t.Errorf("dsn %q not defaulted to a connectable local database", cfg.Postgres.DSN)
	}
	if cfg.App.PublicBaseURL == "" {
		t.Error("public base url not defaulted")
	}
	if cfg.IsProduction() {
		t.Error("development env reported as production")
	}
}

func TestLoadFailsFastInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("AUTH_ACCESS_SECRET", "")
	t.Setenv("AUTH_REFRESH_SECRET", "secret")
	t.Setenv("PUBLIC_BASE_URL", "https://leads.example.com")

	_, _, err := Load()
	if err == nil {
		t.Fatal("expected error for missing production configuration")
	}
	for _, name := range []string{"POSTGRES_DSN", "AUTH_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), "AUTH_REFRESH_SECRET") {
		t.Errorf("error %q names a variable that was set", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	app := AppConfig{RequestTimeoutSeconds: 30}
	if got := app.RequestTimeout(); got != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", got)
	}
	app.RequestTimeoutSeconds = 0
	if got := app.RequestTimeout(); got != 0 {
		t.Errorf("timeout = %v, want disabled", got)
	}
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "0.0.0.0", Port: "8080"}
	if got := app.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("addr = %q", got)
	}
}
