package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("FACILITY_TIMEZONE", "Asia/Seoul")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSpaces(t *testing.T) {
	out, err := run(t, "spaces")
	if err != nil {
		t.Fatalf("spaces: %v", err)
	}
	if !strings.Contains(out, "ID") || !strings.Contains(out, "Room 402") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestReservationsList_Empty(t *testing.T) {
	out, err := run(t, "reservations", "list", "--status", "pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No reservations found") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestReservationsApprove_UnknownID(t *testing.T) {
	if _, err := run(t, "reservations", "approve", "6f1c2d1e-8d55-4d8a-9a57-6a8f0f6b1c11"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestUsage(t *testing.T) {
	out, err := run(t, "usage", "--from", "2026-02-01", "--to", "2026-03-01")
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if !strings.Contains(out, "HOURS") || !strings.Contains(out, "0.00") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestMigrate_RejectsNonPostgresDriver(t *testing.T) {
	if _, err := run(t, "migrate"); err == nil {
		t.Fatalf("expected migrate to refuse the memory driver")
	}
}
