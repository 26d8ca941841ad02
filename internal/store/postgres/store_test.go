package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"roombooking/internal/booking"
	"roombooking/pkg/config"
	"roombooking/pkg/db"
)

// Runs against a throwaway database only when TEST_DATABASE_URL is set.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cfg := config.Config{DatabaseURL: url}
	if _, err := db.Migrate("file://../../../migrations", cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `DELETE FROM reservations`); err != nil {
		t.Fatalf("reset: %v", err)
	}
	s := NewStore(pool)
	if err := s.UpsertSpace(ctx, booking.Space{ID: "402", Name: "Room 402"}); err != nil {
		t.Fatalf("seed space: %v", err)
	}
	return s
}

func newReservation(start time.Time) *booking.Reservation {
	return &booking.Reservation{
		ID:        uuid.NewString(),
		SpaceID:   "402",
		Title:     "모임",
		Requester: "Kim",
		StartAt:   start,
		EndAt:     start.Add(2 * time.Hour),
		Status:    booking.StatusPending,
	}
}

func TestStore_InsertListAndOverlap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)

	first := newReservation(start)
	if err := s.InsertReservation(ctx, first, booking.InsertOptions{PreventOverlap: true}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	clash := newReservation(start.Add(time.Hour))
	err := s.InsertReservation(ctx, clash, booking.InsertOptions{PreventOverlap: true})
	if !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := s.GetReservation(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.StartAt.Equal(start) || got.Status != booking.StatusPending {
		t.Fatalf("unexpected reservation: %+v", got)
	}

	approved, err := s.ListReservations(ctx, booking.Filter{Status: booking.StatusApproved})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(approved) != 0 {
		t.Fatalf("expected no approved reservations, got %d", len(approved))
	}
}

func TestStore_UpdateStatusAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := newReservation(time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC))
	if err := s.InsertReservation(ctx, r, booking.InsertOptions{}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i := 0; i < 2; i++ {
		got, err := s.UpdateStatus(ctx, r.ID, booking.StatusApproved)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if got.Status != booking.StatusApproved {
			t.Fatalf("update %d: expected approved, got %q", i, got.Status)
		}
	}
	if _, err := s.UpdateStatus(ctx, uuid.NewString(), booking.StatusApproved); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := s.DeleteReservation(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteReservation(ctx, r.ID); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
