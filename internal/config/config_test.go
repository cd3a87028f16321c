package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppMode != "dev" {
		t.Errorf("AppMode = %q, want %q", cfg.AppMode, "dev")
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("JWT.Algorithm = %q, want %q", cfg.JWT.Algorithm, "HS256")
	}
	if cfg.JWT.AccessTokenMins != 15 {
		t.Errorf("JWT.AccessTokenMins = %d, want 15", cfg.JWT.AccessTokenMins)
	}
	if cfg.JWT.RefreshTokenDays != 7 {
		t.Errorf("JWT.RefreshTokenDays = %d, want 7", cfg.JWT.RefreshTokenDays)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProd() {
		t.Error("IsProd() = false, want true")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.JWT.Secret != "prod-secret" {
		t.Errorf("JWT.Secret = %q, want %q", cfg.JWT.Secret, "prod-secret")
	}
	if cfg.JWT.Algorithm != "HS512" {
		t.Errorf("JWT.Algorithm = %q, want %q", cfg.JWT.Algorithm, "HS512")
	}
	if cfg.JWT.AccessTokenMins != 5 {
		t.Errorf("JWT.AccessTokenMins = %d, want 5", cfg.JWT.AccessTokenMins)
	}
	if cfg.JWT.RefreshTokenDays != 30 {
		t.Errorf("JWT.RefreshTokenDays = %d, want 30", cfg.JWT.RefreshTokenDays)
	}
}

func TestLoad_InvalidAppMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_MODE")
	}
}

func TestLoad_UnsupportedAlgorithmFallsBack(t *testing.T) {
	t.Setenv("JWT_ALGORITHM", "RS256")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("JWT.Algorithm = %q, want fallback %q", cfg.JWT.Algorithm, "HS256")
	}
}
