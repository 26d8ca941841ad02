package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"roombooking/internal/booking"
)

func TestFeed_EncodesApprovedEvents(t *testing.T) {
	spaces := []booking.Space{{ID: "402", Name: "Room 402"}}
	rs := []booking.Reservation{{
		ID:       "6f1c2d1e-8d55-4d8a-9a57-6a8f0f6b1c11",
		SpaceID:  "402",
		Title:    "모임",
		TeamName: "Youth",
		StartAt:  time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC),
		Status:   booking.StatusApproved,
	}}
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(Feed(spaces, rs, "rooms.example.org", now)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"BEGIN:VEVENT",
		"UID:6f1c2d1e-8d55-4d8a-9a57-6a8f0f6b1c11@rooms.example.org",
		"SUMMARY:[Room 402] 모임",
		"DTSTART:20260217T100000Z",
		"DTEND:20260217T120000Z",
		"DESCRIPTION:Youth",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in feed:\n%s", want, out)
		}
	}
}

func TestFeed_FallsBackToSpaceID(t *testing.T) {
	rs := []booking.Reservation{{ID: "x", SpaceID: "gone", Title: "t",
		StartAt: time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 2, 17, 11, 0, 0, 0, time.UTC)}}
	cal := Feed(nil, rs, "h", time.Now())
	if len(cal.Children) != 1 {
		t.Fatalf("expected one event, got %d", len(cal.Children))
	}
	summary, err := cal.Children[0].Props.Text(ical.PropSummary)
	if err != nil || summary != "[gone] t" {
		t.Fatalf("unexpected summary %q (%v)", summary, err)
	}
}
