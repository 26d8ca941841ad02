package booking

import (
	"context"
	"time"
)

type Space struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Reservation struct {
	ID        string    `json:"id"`
	SpaceID   string    `json:"space_id"`
	Title     string    `json:"title"`
	Requester string    `json:"requester"`
	TeamName  string    `json:"team_name,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overlaps reports whether r intersects the half-open interval [start, end).
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}

// Blocking reports whether r holds its slot against new submissions.
func (r Reservation) Blocking() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// Filter narrows a reservation listing. Zero values mean "no constraint".
type Filter struct {
	Status  Status
	SpaceID string
	// From/To select reservations intersecting [From, To).
	From time.Time
	To   time.Time
}

// Public reports whether the filter only exposes approved reservations.
func (f Filter) Public() bool {
	return f.Status == StatusApproved
}

func (f Filter) Match(r Reservation) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.SpaceID != "" && r.SpaceID != f.SpaceID {
		return false
	}
	if !f.From.IsZero() && !r.EndAt.After(f.From) {
		return false
	}
	if !f.To.IsZero() && !r.StartAt.Before(f.To) {
		return false
	}
	return true
}

type InsertOptions struct {
	// PreventOverlap makes the insert fail with an *OverlapError when a blocking
	// reservation on the same space intersects the new interval.
	PreventOverlap bool
}

// Store is the persistence contract shared by the Postgres, Supabase and in-memory backends.
//
// Lookups of unknown ids return ErrNotFound. Listings are ordered by start_at ascending;
// spaces by name.
type Store interface {
	ListSpaces(ctx context.Context) ([]Space, error)
	ListReservations(ctx context.Context, f Filter) ([]Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	InsertReservation(ctx context.Context, r *Reservation, opts InsertOptions) error
	// UpdateStatus returns the stored record unchanged when it already has next.
	UpdateStatus(ctx context.Context, id string, next Status) (*Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// SpaceWriter is implemented by backends that can manage the space catalogue.
type SpaceWriter interface {
	UpsertSpace(ctx context.Context, sp Space) error
}
