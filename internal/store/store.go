// Package store picks the reservation backend described by the configuration.
package store

import (
	"context"
	"fmt"

	"roombooking/internal/booking"
	"roombooking/internal/store/memory"
	"roombooking/internal/store/postgres"
	"roombooking/internal/store/supabase"
	"roombooking/pkg/config"
	"roombooking/pkg/db"
)

// Backend is the full surface every driver provides.
type Backend interface {
	booking.Store
	booking.SpaceWriter
}

// Open connects the configured backend. The returned close func is never nil.
func Open(ctx context.Context, cfg config.Config) (Backend, func(), error) {
	switch driver := cfg.Driver(); driver {
	case "postgres":
		pool, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, func() {}, fmt.Errorf("db open: %w", err)
		}
		return postgres.NewStore(pool), pool.Close, nil
	case "supabase":
		if cfg.Supabase.URL == "" || cfg.Supabase.ServiceRoleKey == "" {
			return nil, func() {}, fmt.Errorf("supabase driver needs SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
		return supabase.NewStore(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, nil), func() {}, nil
	case "memory":
		return memory.New(DemoSpaces()...), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown store driver %q", driver)
	}
}

// DemoSpaces seeds the in-memory backend.
func DemoSpaces() []booking.Space {
	return []booking.Space{
		{ID: "401", Name: "Room 401", Color: "#429f8e"},
		{ID: "402", Name: "Room 402", Color: "#f0a35e"},
		{ID: "chapel", Name: "Chapel", Color: "#5b7bd5"},
		{ID: "hall", Name: "Main Hall", Color: "#c0567a"},
	}
}
