package db

import (
	"testing"

	"github.com/jackc/pgx/v5"

	"roombooking/pkg/config"
)

func TestRuntimeConnString_PrefersDatabaseURL(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://pooler:6543/postgres?pgbouncer=true",
		DB:          config.DBConfig{Host: "localhost", Port: "5432", Name: "x", User: "u", Password: "p"},
	}
	if got := runtimeConnString(cfg); got != cfg.DatabaseURL {
		t.Fatalf("expected DATABASE_URL, got %q", got)
	}
}

func TestMigrationConnString_PrefersDirectURL(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://pooler:6543/postgres",
		DirectURL:   "postgres://direct:5432/postgres",
	}
	if got := migrationConnString(cfg); got != cfg.DirectURL {
		t.Fatalf("expected DIRECT_URL, got %q", got)
	}
	cfg.DirectURL = "  "
	if got := migrationConnString(cfg); got != cfg.DatabaseURL {
		t.Fatalf("expected fallback to DATABASE_URL, got %q", got)
	}
}

func TestDSN_DefaultsSSLMode(t *testing.T) {
	got := dsn(config.DBConfig{Host: "db", Port: "5432", Name: "rooms", User: "u", Password: "p"})
	want := "postgres://u:p@db:5432/rooms?sslmode=disable"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPoolConfig_TagsApplicationName(t *testing.T) {
	pcfg, err := poolConfig("postgres://u:p@localhost:5432/rooms?sslmode=disable")
	if err != nil {
		t.Fatalf("pool config: %v", err)
	}
	if got := pcfg.ConnConfig.RuntimeParams["application_name"]; got != applicationName {
		t.Fatalf("expected %q, got %q", applicationName, got)
	}
	if pcfg.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeSimpleProtocol {
		t.Fatalf("direct connections keep the extended protocol")
	}

	pcfg, err = poolConfig("postgres://u:p@localhost:5432/rooms?application_name=ops")
	if err != nil {
		t.Fatalf("pool config: %v", err)
	}
	if got := pcfg.ConnConfig.RuntimeParams["application_name"]; got != "ops" {
		t.Fatalf("explicit application_name must win, got %q", got)
	}
}

func TestPoolConfig_PgBouncer(t *testing.T) {
	pcfg, err := poolConfig("postgres://u:p@pooler:6543/postgres?pgbouncer=true")
	if err != nil {
		t.Fatalf("pool config: %v", err)
	}
	if pcfg.ConnConfig.DefaultQueryExecMode != pgx.QueryExecModeSimpleProtocol {
		t.Fatalf("expected simple protocol behind pgbouncer")
	}
	if pcfg.ConnConfig.StatementCacheCapacity != 0 {
		t.Fatalf("expected statement cache disabled")
	}
	if _, ok := pcfg.ConnConfig.RuntimeParams["pgbouncer"]; ok {
		t.Fatalf("pgbouncer hint must not be sent as a startup parameter")
	}
}

func TestPoolConfig_InvalidURL(t *testing.T) {
	if _, err := poolConfig("postgres://u:p@localhost:notaport/rooms"); err == nil {
		t.Fatalf("expected parse error")
	}
}
