// Package supabase stores reservations through a Supabase project's PostgREST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roombooking/internal/booking"
)

const reservationSelect = "id,space_id,title,requester,team_name,purpose,start_at,end_at,status,created_at,updated_at"

// APIError is a non-2xx PostgREST response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.StatusCode, e.Body)
}

// Store talks to /rest/v1 with the service-role key. The overlap check is a read followed
// by an insert, so two simultaneous submissions for one slot can both succeed.
type Store struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewStore(baseURL, apiKey string, client *http.Client) *Store {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// row mirrors the table; nullable text columns decode as pointers.
type row struct {
	ID        string    `json:"id"`
	SpaceID   string    `json:"space_id"`
	Title     string    `json:"title"`
	Requester string    `json:"requester"`
	TeamName  *string   `json:"team_name"`
	Purpose   *string   `json:"purpose"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r row) reservation() booking.Reservation {
	out := booking.Reservation{
		ID:        r.ID,
		SpaceID:   r.SpaceID,
		Title:     r.Title,
		Requester: r.Requester,
		StartAt:   r.StartAt.UTC(),
		EndAt:     r.EndAt.UTC(),
		Status:    booking.Status(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if r.TeamName != nil {
		out.TeamName = *r.TeamName
	}
	if r.Purpose != nil {
		out.Purpose = *r.Purpose
	}
	return out
}

func (s *Store) do(ctx context.Context, method, table string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := s.baseURL + "/rest/v1/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if method == http.MethodPost && table == "spaces" {
		req.Header.Set("Prefer", "return=representation,resolution=merge-duplicates")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (s *Store) ListSpaces(ctx context.Context) ([]booking.Space, error) {
	var rows []struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Color *string `json:"color"`
	}
	q := url.Values{"select": {"id,name,color"}, "order": {"name.asc,id.asc"}}
	if err := s.do(ctx, http.MethodGet, "spaces", q, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]booking.Space, 0, len(rows))
	for _, r := range rows {
		sp := booking.Space{ID: r.ID, Name: r.Name}
		if r.Color != nil {
			sp.Color = *r.Color
		}
		out = append(out, sp)
	}
	return out, nil
}

func (s *Store) ListReservations(ctx context.Context, f booking.Filter) ([]booking.Reservation, error) {
	q := url.Values{"select": {reservationSelect}, "order": {"start_at.asc,id.asc"}}
	if f.Status != "" {
		q.Set("status", "eq."+string(f.Status))
	}
	if f.SpaceID != "" {
		q.Set("space_id", "eq."+f.SpaceID)
	}
	if !f.From.IsZero() {
		q.Set("end_at", "gt."+timestamp(f.From))
	}
	if !f.To.IsZero() {
		q.Set("start_at", "lt."+timestamp(f.To))
	}
	return s.selectReservations(ctx, q)
}

func (s *Store) GetReservation(ctx context.Context, id string) (*booking.Reservation, error) {
	rs, err := s.selectReservations(ctx, url.Values{"select": {reservationSelect}, "id": {"eq." + id}})
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, booking.ErrNotFound
	}
	return &rs[0], nil
}

func (s *Store) InsertReservation(ctx context.Context, r *booking.Reservation, opts booking.InsertOptions) error {
	if opts.PreventOverlap {
		var hits []struct {
			ID string `json:"id"`
		}
		q := url.Values{
			"select":   {"id"},
			"space_id": {"eq." + r.SpaceID},
			"status":   {"in.(pending,approved)"},
			"start_at": {"lt." + timestamp(r.EndAt)},
			"end_at":   {"gt." + timestamp(r.StartAt)},
			"order":    {"start_at.asc"},
			"limit":    {"1"},
		}
		if err := s.do(ctx, http.MethodGet, "reservations", q, nil, &hits); err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if len(hits) > 0 {
			return &booking.OverlapError{ConflictingID: hits[0].ID}
		}
	}

	payload := map[string]any{
		"id":        r.ID,
		"space_id":  r.SpaceID,
		"title":     r.Title,
		"requester": r.Requester,
		"team_name": nullable(r.TeamName),
		"purpose":   nullable(r.Purpose),
		"start_at":  timestamp(r.StartAt),
		"end_at":    timestamp(r.EndAt),
		"status":    string(r.Status),
	}
	var rows []row
	if err := s.do(ctx, http.MethodPost, "reservations", nil, payload, &rows); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	if len(rows) > 0 {
		r.CreatedAt, r.UpdatedAt = rows[0].CreatedAt.UTC(), rows[0].UpdatedAt.UTC()
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, next booking.Status) (*booking.Reservation, error) {
	current, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == next {
		return current, nil
	}
	if !booking.CanTransition(current.Status, next) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", booking.ErrConflict, current.Status, next)
	}

	payload := map[string]any{
		"status":     string(next),
		"updated_at": timestamp(time.Now()),
	}
	var rows []row
	q := url.Values{"id": {"eq." + id}, "select": {reservationSelect}}
	if err := s.do(ctx, http.MethodPatch, "reservations", q, payload, &rows); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if len(rows) == 0 {
		// Deleted between the read and the write.
		return nil, fmt.Errorf("%w: update did not apply", booking.ErrConflict)
	}
	out := rows[0].reservation()
	return &out, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	var rows []struct {
		ID string `json:"id"`
	}
	q := url.Values{"id": {"eq." + id}, "select": {"id"}}
	if err := s.do(ctx, http.MethodDelete, "reservations", q, nil, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return booking.ErrNotFound
	}
	return nil
}

func (s *Store) UpsertSpace(ctx context.Context, sp booking.Space) error {
	payload := map[string]any{"id": sp.ID, "name": sp.Name, "color": nullable(sp.Color)}
	return s.do(ctx, http.MethodPost, "spaces", url.Values{"on_conflict": {"id"}}, payload, nil)
}

func (s *Store) selectReservations(ctx context.Context, q url.Values) ([]booking.Reservation, error) {
	var rows []row
	if err := s.do(ctx, http.MethodGet, "reservations", q, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]booking.Reservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.reservation())
	}
	return out, nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
