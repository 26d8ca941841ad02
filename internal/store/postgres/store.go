// Package postgres stores reservations in Postgres through a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roombooking/internal/booking"
	"roombooking/pkg/db"
)

const reservationColumns = `id::text, space_id, title, requester, COALESCE(team_name, ''), COALESCE(purpose, ''),
       start_at, end_at, status, created_at, updated_at`

type Store struct {
	db *pgxpool.Pool
	qb sq.StatementBuilderType
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		db: pool,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *Store) ListSpaces(ctx context.Context) ([]booking.Space, error) {
	const q = `
SELECT id, name, COALESCE(color, '')
FROM spaces
ORDER BY name ASC, id ASC
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []booking.Space{}
	for rows.Next() {
		var sp booking.Space
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Color); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *Store) ListReservations(ctx context.Context, f booking.Filter) ([]booking.Reservation, error) {
	b := s.qb.Select(reservationColumns).From("reservations")
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.SpaceID != "" {
		b = b.Where(sq.Eq{"space_id": f.SpaceID})
	}
	if !f.From.IsZero() {
		b = b.Where(sq.Gt{"end_at": f.From})
	}
	if !f.To.IsZero() {
		b = b.Where(sq.Lt{"start_at": f.To})
	}
	query, args, err := b.OrderBy("start_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []booking.Reservation{}
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) GetReservation(ctx context.Context, id string) (*booking.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	r, err := scanReservation(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	return r, err
}

// InsertReservation holds the space's advisory lock across the overlap check and the
// insert, so two concurrent submissions for the same space cannot both pass it.
func (s *Store) InsertReservation(ctx context.Context, r *booking.Reservation, opts booking.InsertOptions) error {
	const overlapQ = `
SELECT id::text
FROM reservations
WHERE space_id = $1
  AND status IN ('pending', 'approved')
  AND start_at < $3
  AND end_at > $2
ORDER BY start_at ASC
LIMIT 1
`
	const insertQ = `
INSERT INTO reservations (id, space_id, title, requester, team_name, purpose, start_at, end_at, status)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
RETURNING created_at, updated_at
`
	insert := func(tx pgx.Tx) error {
		if opts.PreventOverlap {
			var conflicting string
			err := tx.QueryRow(ctx, overlapQ, r.SpaceID, r.StartAt, r.EndAt).Scan(&conflicting)
			switch {
			case err == nil:
				return &booking.OverlapError{ConflictingID: conflicting}
			case !errors.Is(err, pgx.ErrNoRows):
				return fmt.Errorf("check overlap: %w", err)
			}
		}

		if err := tx.QueryRow(ctx, insertQ,
			r.ID, r.SpaceID, r.Title, r.Requester, r.TeamName, r.Purpose, r.StartAt, r.EndAt, string(r.Status),
		).Scan(&r.CreatedAt, &r.UpdatedAt); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()
		return nil
	}
	if opts.PreventOverlap {
		return db.WithLockedTx(ctx, s.db, r.SpaceID, insert)
	}
	return db.WithTx(ctx, s.db, insert)
}

func (s *Store) UpdateStatus(ctx context.Context, id string, next booking.Status) (*booking.Reservation, error) {
	selectQ := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	const updateQ = `
UPDATE reservations
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`
	var out *booking.Reservation
	err := db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		r, err := scanReservation(tx.QueryRow(ctx, selectQ, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return err
		}
		if r.Status == next {
			out = r
			return nil
		}
		if !booking.CanTransition(r.Status, next) {
			return fmt.Errorf("%w: cannot move %s to %s", booking.ErrConflict, r.Status, next)
		}
		if err := tx.QueryRow(ctx, updateQ, id, string(next)).Scan(&r.UpdatedAt); err != nil {
			return err
		}
		r.Status = next
		r.UpdatedAt = r.UpdatedAt.UTC()
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	query, args, err := s.qb.Delete("reservations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// UpsertSpace creates or renames a space. Used by the operator CLI.
func (s *Store) UpsertSpace(ctx context.Context, sp booking.Space) error {
	const q = `
INSERT INTO spaces (id, name, color)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
`
	_, err := s.db.Exec(ctx, q, sp.ID, sp.Name, sp.Color)
	return err
}

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var r booking.Reservation
	var status string
	if err := row.Scan(
		&r.ID, &r.SpaceID, &r.Title, &r.Requester, &r.TeamName, &r.Purpose,
		&r.StartAt, &r.EndAt, &status, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Status = booking.Status(status)
	r.StartAt, r.EndAt = r.StartAt.UTC(), r.EndAt.UTC()
	r.CreatedAt, r.UpdatedAt = r.CreatedAt.UTC(), r.UpdatedAt.UTC()
	return &r, nil
}
