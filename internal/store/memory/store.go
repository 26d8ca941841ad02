// Package memory is a process-local booking.Store for demos and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"roombooking/internal/booking"
)

type Store struct {
	mu           sync.Mutex
	spaces       []booking.Space
	reservations map[string]booking.Reservation
	now          func() time.Time
}

func New(spaces ...booking.Space) *Store {
	s := &Store{
		reservations: make(map[string]booking.Reservation),
		now:          time.Now,
	}
	s.spaces = append(s.spaces, spaces...)
	s.sortSpaces()
	return s
}

func (s *Store) ListSpaces(ctx context.Context) ([]booking.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Space, len(s.spaces))
	copy(out, s.spaces)
	return out, nil
}

func (s *Store) ListReservations(ctx context.Context, f booking.Filter) ([]booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []booking.Reservation{}
	for _, r := range s.reservations {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}

func (s *Store) GetReservation(ctx context.Context, id string) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &r, nil
}

func (s *Store) InsertReservation(ctx context.Context, r *booking.Reservation, opts booking.InsertOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.PreventOverlap {
		for _, existing := range s.reservations {
			if existing.SpaceID == r.SpaceID && existing.Blocking() && existing.Overlaps(r.StartAt, r.EndAt) {
				return &booking.OverlapError{ConflictingID: existing.ID}
			}
		}
	}
	now := s.now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	s.reservations[r.ID] = *r
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, next booking.Status) (*booking.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	if r.Status == next {
		return &r, nil
	}
	if !booking.CanTransition(r.Status, next) {
		return nil, booking.ErrConflict
	}
	r.Status = next
	r.UpdatedAt = s.now().UTC()
	s.reservations[id] = r
	return &r, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return booking.ErrNotFound
	}
	delete(s.reservations, id)
	return nil
}

func (s *Store) UpsertSpace(ctx context.Context, sp booking.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.spaces {
		if s.spaces[i].ID == sp.ID {
			s.spaces[i] = sp
			s.sortSpaces()
			return nil
		}
	}
	s.spaces = append(s.spaces, sp)
	s.sortSpaces()
	return nil
}

func (s *Store) sortSpaces() {
	sort.SliceStable(s.spaces, func(i, j int) bool {
		return strings.ToLower(s.spaces[i].Name) < strings.ToLower(s.spaces[j].Name)
	})
}
