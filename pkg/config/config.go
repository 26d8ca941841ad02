package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	LogLevel       string
	MigrationsPath string

	// StoreDriver selects the reservation backend: postgres, supabase or memory.
	// Empty means detect from the connection settings below.
	StoreDriver string

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Supabase SupabaseConfig

	Admin AdminConfig

	Booking BookingConfig

	// AllowedOrigins lists the origins of the public pages allowed to call the API
	// with credentials. Example:
	//   https://rooms.example.org,http://localhost:3000
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// SupabaseConfig points at the PostgREST endpoint of a hosted Supabase project.
type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
}

type AdminConfig struct {
	// Password is the single shared admin secret. Empty disables admin login entirely.
	Password string

	// SessionSecret signs session cookies. When empty a random key is generated at start,
	// so sessions do not survive a restart.
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	LoginPath     string
}

type BookingConfig struct {
	// Timezone is the facility's civil timezone used for inputs without an offset.
	Timezone       string
	PreventOverlap bool
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// Driver resolves StoreDriver, preferring a direct Postgres connection over the REST API.
func (c Config) Driver() string {
	if d := strings.ToLower(strings.TrimSpace(c.StoreDriver)); d != "" {
		return d
	}
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return "postgres"
	}
	if c.Supabase.URL != "" && c.Supabase.ServiceRoleKey != "" {
		return "supabase"
	}
	return "postgres"
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := v.GetString("HTTP_ADDR")
	if httpAddr == "" {
		if port := v.GetString("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         v.GetString("APP_ENV"),
		HTTPAddr:       httpAddr,
		LogLevel:       v.GetString("LOG_LEVEL"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		StoreDriver:    v.GetString("STORE_DRIVER"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DirectURL:      v.GetString("DIRECT_URL"),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Supabase: SupabaseConfig{
			URL:            strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		},
		Admin: AdminConfig{
			Password:      v.GetString("ADMIN_PASSWORD"),
			SessionSecret: v.GetString("SESSION_SECRET"),
			SessionTTL:    v.GetDuration("SESSION_TTL"),
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			LoginPath:     v.GetString("ADMIN_LOGIN_PATH"),
		},
		Booking: BookingConfig{
			Timezone:       v.GetString("FACILITY_TIMEZONE"),
			PreventOverlap: v.GetBool("PREVENT_OVERLAP"),
		},
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "roombooking")
	v.SetDefault("DB_USER", "roombooking")
	v.SetDefault("DB_PASSWORD", "roombooking")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SESSION_TTL", 8*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "admin_session")
	v.SetDefault("ADMIN_LOGIN_PATH", "/admin/login")
	v.SetDefault("FACILITY_TIMEZONE", "Asia/Seoul")
	v.SetDefault("PREVENT_OVERLAP", true)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
}

func splitList(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
