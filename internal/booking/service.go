package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Options struct {
	// Location is the facility's civil timezone. Nil means UTC.
	Location       *time.Location
	PreventOverlap bool
}

type Service struct {
	store          Store
	loc            *time.Location
	preventOverlap bool

	now   func() time.Time
	newID func() string
}

func NewService(store Store, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:          store,
		loc:            loc,
		preventOverlap: opts.PreventOverlap,
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Submit validates a booking request and stores it as pending.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Reservation, error) {
	n, err := normalize(req, s.loc)
	if err != nil {
		return nil, err
	}

	spaces, err := s.store.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	sp, ok := ResolveSpace(spaces, n.SpaceID, n.SpaceName)
	if !ok {
		key := n.SpaceID
		if key == "" {
			key = n.SpaceName
		}
		return nil, ValidationError{Code: CodeSpaceNotFound, Message: fmt.Sprintf("space not found: %s", key)}
	}

	now := s.now().UTC()
	r := &Reservation{
		ID:        s.newID(),
		SpaceID:   sp.ID,
		Title:     n.Title,
		Requester: n.Requester,
		TeamName:  n.TeamName,
		Purpose:   n.Purpose,
		StartAt:   n.Start,
		EndAt:     n.End,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertReservation(ctx, r, InsertOptions{PreventOverlap: s.preventOverlap}); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseFilter builds a listing filter from query values. from/to follow the same datetime
// rules as submissions.
func (s *Service) ParseFilter(status, spaceID, from, to string) (Filter, error) {
	st, err := ParseStatusFilter(strings.TrimSpace(status))
	if err != nil {
		return Filter{}, ValidationError{Code: CodeInvalidStatus, Message: "status must be approved, pending or all"}
	}
	f := Filter{Status: st, SpaceID: strings.TrimSpace(spaceID)}
	if strings.TrimSpace(from) != "" {
		if f.From, err = ParseInstant(from, s.loc); err != nil {
			return Filter{}, ValidationError{Code: CodeInvalidDatetime, Message: "invalid from: " + err.Error()}
		}
	}
	if strings.TrimSpace(to) != "" {
		if f.To, err = ParseInstant(to, s.loc); err != nil {
			return Filter{}, ValidationError{Code: CodeInvalidDatetime, Message: "invalid to: " + err.Error()}
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && !f.To.After(f.From) {
		return Filter{}, ValidationError{Code: CodeInvalidRange, Message: "to must be after from"}
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Reservation, error) {
	out, err := s.store.ListReservations(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if out == nil {
		out = []Reservation{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Reservation, error) {
	id, ok := normalizeID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.store.GetReservation(ctx, id)
}

// Transition moves a reservation to the target status. Re-applying the current status
// succeeds without a write.
func (s *Service) Transition(ctx context.Context, id, to string) (*Reservation, error) {
	next, err := ParseStatus(strings.TrimSpace(to))
	if err != nil {
		return nil, ValidationError{Code: CodeInvalidStatus, Message: "status must be approved or pending"}
	}
	id, ok := normalizeID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.store.UpdateStatus(ctx, id, next)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}
	return s.store.DeleteReservation(ctx, id)
}

func (s *Service) Spaces(ctx context.Context) ([]Space, error) {
	out, err := s.store.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	if out == nil {
		out = []Space{}
	}
	return out, nil
}

// Usage summarizes bookings per space within the filter's window.
func (s *Service) Usage(ctx context.Context, f Filter) ([]SpaceUsage, error) {
	spaces, err := s.Spaces(ctx)
	if err != nil {
		return nil, err
	}
	f.Status = ""
	rs, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return Summarize(spaces, rs, f.From, f.To), nil
}

func normalizeID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}
