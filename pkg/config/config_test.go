package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("FACILITY_TIMEZONE", "")
	t.Setenv("PREVENT_OVERLAP", "")

	cfg := Load()
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("expected :8081, got %q", cfg.HTTPAddr)
	}
	if cfg.Admin.SessionTTL != 8*time.Hour {
		t.Fatalf("expected 8h session ttl, got %s", cfg.Admin.SessionTTL)
	}
	if cfg.Booking.Timezone != "Asia/Seoul" {
		t.Fatalf("expected Asia/Seoul, got %q", cfg.Booking.Timezone)
	}
	if !cfg.Booking.PreventOverlap {
		t.Fatalf("expected overlap prevention on by default")
	}
}

func TestLoad_PortFallbackAndOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PREVENT_OVERLAP", "false")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.HTTPAddr)
	}
	if cfg.Admin.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.Admin.SessionTTL)
	}
	if cfg.Booking.PreventOverlap {
		t.Fatalf("expected overlap prevention off")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %#v", cfg.AllowedOrigins)
	}
}

func TestDriver(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{StoreDriver: "Memory"}, "memory"},
		{"database url", Config{DatabaseURL: "postgres://x"}, "postgres"},
		{"supabase", Config{Supabase: SupabaseConfig{URL: "https://x.supabase.co", ServiceRoleKey: "k"}}, "supabase"},
		{"fallback", Config{}, "postgres"},
	}
	for _, tc := range cases {
		if got := tc.cfg.Driver(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
