package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, property_id, reference, check_in, check_out, guest_name, guest_email, guest_phone, total_cents, status, created_on, updated_on, deleted_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.PropertyID, &b.Reference, &b.CheckIn, &b.CheckOut,
		&b.Guest.Name, &b.Guest.Email, &b.Guest.Phone, &b.TotalCents, &b.Status,
		&b.CreatedOn, &b.UpdatedOn, &b.DeletedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a confirmed booking after re-checking overlap inside a
// transaction. SELECT ... FOR UPDATE on the property row serializes
// concurrent booking attempts for the same property: a second transaction
// blocks on the lock until the first commits, then sees its booking in the
// overlap re-check and fails with domain.ErrConflict. Any availability
// pre-check the caller did is advisory only; this is the authoritative
// guarantee that confirmed ranges never overlap.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "begin booking tx", Err: err}
	}
	defer tx.Rollback()

	var propertyID int32
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM properties WHERE id = $1 FOR UPDATE`, b.PropertyID,
	).Scan(&propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return &domain.PersistenceError{Op: "lock property row", Err: err}
	}

	var conflict bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM bookings
		   WHERE property_id = $1 AND status = 'confirmed' AND deleted_on IS NULL
		     AND check_in < $3 AND $2 < check_out
		 )`, b.PropertyID, b.CheckIn, b.CheckOut,
	).Scan(&conflict)
	if err != nil {
		return &domain.PersistenceError{Op: "overlap re-check", Err: err}
	}
	if conflict {
		return domain.ErrConflict
	}

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (property_id, reference, check_in, check_out, guest_name, guest_email, guest_phone, total_cents, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		b.PropertyID, b.Reference, b.CheckIn, b.CheckOut,
		b.Guest.Name, b.Guest.Email, b.Guest.Phone, b.TotalCents, b.Status, now, now,
	).Scan(&b.ID)
	if err != nil {
		return &domain.PersistenceError{Op: "insert booking", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "commit booking", Err: err}
	}
	b.CreatedOn = now
	b.UpdatedOn = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_on IS NULL`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) Overlaps(ctx context.Context, propertyID int32, from, to time.Time, excludeID int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM bookings
	            WHERE property_id = $1 AND status = 'confirmed' AND deleted_on IS NULL
	              AND check_in < $3 AND $2 < check_out
	              AND ($4 = 0 OR id <> $4)
	          )`
	var overlaps bool
	err := r.db.QueryRowContext(ctx, query, propertyID, from, to, excludeID).Scan(&overlaps)
	return overlaps, err
}

func (r *bookingRepository) Cancel(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `UPDATE bookings SET status = 'cancelled', updated_on = NOW()
	          WHERE id = $1 AND status = 'confirmed' AND deleted_on IS NULL
	          RETURNING ` + bookingColumns
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) ListByProperty(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE property_id = $1 AND deleted_on IS NULL`

	args := []interface{}{propertyID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY check_in DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListConfirmedInWindow(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE property_id = $1 AND status = 'confirmed' AND deleted_on IS NULL
	            AND check_in < $3 AND $2 < check_out
	          ORDER BY check_in`
	rows, err := r.db.QueryContext(ctx, query, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListArrivals(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = 'confirmed' AND deleted_on IS NULL AND check_in = $1
	          ORDER BY property_id`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
