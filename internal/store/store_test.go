package store

import (
	"context"
	"testing"

	"roombooking/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), config.Config{StoreDriver: "memory"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()

	spaces, err := s.ListSpaces(context.Background())
	if err != nil {
		t.Fatalf("list spaces: %v", err)
	}
	if len(spaces) != len(DemoSpaces()) || spaces[0].Name != "Chapel" {
		t.Fatalf("unexpected demo spaces: %+v", spaces)
	}
}

func TestOpen_Errors(t *testing.T) {
	cases := []config.Config{
		{StoreDriver: "supabase"},
		{StoreDriver: "sqlite"},
	}
	for _, cfg := range cases {
		_, closeFn, err := Open(context.Background(), cfg)
		if err == nil {
			t.Fatalf("%s: expected error", cfg.StoreDriver)
		}
		closeFn()
	}
}
