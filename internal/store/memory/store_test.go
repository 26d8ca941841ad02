package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"roombooking/internal/booking"
)

func TestInsert_PendingAndApprovedBothBlock(t *testing.T) {
	s := New(booking.Space{ID: "402", Name: "Room 402"})
	ctx := context.Background()
	start := time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)
	opts := booking.InsertOptions{PreventOverlap: true}

	first := &booking.Reservation{ID: "a", SpaceID: "402", StartAt: start, EndAt: start.Add(time.Hour), Status: booking.StatusApproved}
	if err := s.InsertReservation(ctx, first, opts); err != nil {
		t.Fatalf("insert: %v", err)
	}
	second := &booking.Reservation{ID: "b", SpaceID: "402", StartAt: start.Add(30 * time.Minute), EndAt: start.Add(2 * time.Hour), Status: booking.StatusPending}
	if err := s.InsertReservation(ctx, second, opts); !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := s.InsertReservation(ctx, second, booking.InsertOptions{}); err != nil {
		t.Fatalf("insert without prevention: %v", err)
	}

	rs, err := s.ListReservations(ctx, booking.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 2 || rs[0].ID != "a" {
		t.Fatalf("expected start order, got %+v", rs)
	}
}

func TestUpdateStatus(t *testing.T) {
	s := New(booking.Space{ID: "402", Name: "Room 402"})
	ctx := context.Background()
	start := time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)

	r := &booking.Reservation{ID: "a", SpaceID: "402", StartAt: start, EndAt: start.Add(time.Hour), Status: booking.StatusPending}
	legacy := &booking.Reservation{ID: "b", SpaceID: "402", StartAt: start, EndAt: start.Add(time.Hour), Status: booking.Status("rejected")}
	for _, x := range []*booking.Reservation{r, legacy} {
		if err := s.InsertReservation(ctx, x, booking.InsertOptions{}); err != nil {
			t.Fatalf("insert %s: %v", x.ID, err)
		}
	}

	got, err := s.UpdateStatus(ctx, "a", booking.StatusApproved)
	if err != nil || got.Status != booking.StatusApproved {
		t.Fatalf("approve: %+v %v", got, err)
	}
	if got, err := s.UpdateStatus(ctx, "a", booking.StatusApproved); err != nil || got.Status != booking.StatusApproved {
		t.Fatalf("repeat approve: %+v %v", got, err)
	}
	if _, err := s.UpdateStatus(ctx, "b", booking.StatusApproved); !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("expected conflict for unknown stored status, got %v", err)
	}
	if _, err := s.UpdateStatus(ctx, "missing", booking.StatusApproved); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpsertSpace_KeepsNameOrder(t *testing.T) {
	s := New(booking.Space{ID: "z", Name: "Zeta"})
	ctx := context.Background()
	if err := s.UpsertSpace(ctx, booking.Space{ID: "a", Name: "alpha"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertSpace(ctx, booking.Space{ID: "z", Name: "Beta"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	spaces, _ := s.ListSpaces(ctx)
	if len(spaces) != 2 || spaces[0].ID != "a" || spaces[1].Name != "Beta" {
		t.Fatalf("unexpected spaces: %+v", spaces)
	}
}
