package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/repository"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityDay, error) {
	query := `SELECT property_id, day, status, price_cents, note, created_on, updated_on
	          FROM availability_days
	          WHERE property_id = $1 AND day >= $2 AND day <= $3
	          ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.AvailabilityDay
	for rows.Next() {
		var d domain.AvailabilityDay
		var price sql.NullInt64
		var note []byte
		if err := rows.Scan(&d.PropertyID, &d.Day, &d.Status, &price, &note, &d.CreatedOn, &d.UpdatedOn); err != nil {
			return nil, err
		}
		if price.Valid {
			d.PriceCents = &price.Int64
		}
		if len(note) > 0 {
			d.Note = &domain.DayNote{}
			if err := json.Unmarshal(note, d.Note); err != nil {
				return nil, fmt.Errorf("decode day note: %w", err)
			}
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// SeedRange relies on the UNIQUE (property_id, day) constraint: existing days
// hit the DO NOTHING arm and keep their status and price untouched.
func (r *availabilityRepository) SeedRange(ctx context.Context, propertyID int32, from, to time.Time) (int, error) {
	query := `INSERT INTO availability_days (property_id, day, status, created_on, updated_on)
	          SELECT $1, d::date, 'available', NOW(), NOW()
	          FROM generate_series($2::date, $3::date, '1 day') AS d
	          ON CONFLICT (property_id, day) DO NOTHING`
	result, err := r.db.ExecContext(ctx, query, propertyID, from, to)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (r *availabilityRepository) UpsertRange(ctx context.Context, propertyID int32, from, to time.Time, status domain.DayStatus, priceCents *int64, note *domain.DayNote) (int, error) {
	var noteJSON []byte
	if note != nil {
		var err error
		noteJSON, err = json.Marshal(note)
		if err != nil {
			return 0, fmt.Errorf("encode day note: %w", err)
		}
	}
	var price sql.NullInt64
	if priceCents != nil {
		price = sql.NullInt64{Int64: *priceCents, Valid: true}
	}
	// A nil price keeps whatever each day already stores; the COALESCE on
	// the conflict arm makes re-blocking a range price-preserving.
	query := `INSERT INTO availability_days (property_id, day, status, price_cents, note, created_on, updated_on)
	          SELECT $1, d::date, $4, $5, $6, NOW(), NOW()
	          FROM generate_series($2::date, $3::date, '1 day') AS d
	          ON CONFLICT (property_id, day) DO UPDATE
	          SET status = EXCLUDED.status,
	              price_cents = COALESCE(EXCLUDED.price_cents, availability_days.price_cents),
	              note = EXCLUDED.note,
	              updated_on = NOW()`
	result, err := r.db.ExecContext(ctx, query, propertyID, from, to, status, price, noteJSON)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (r *availabilityRepository) ResetRange(ctx context.Context, propertyID int32, from, to time.Time) (int, error) {
	query := `INSERT INTO availability_days (property_id, day, status, price_cents, note, created_on, updated_on)
	          SELECT $1, d::date, 'available', NULL, NULL, NOW(), NOW()
	          FROM generate_series($2::date, $3::date, '1 day') AS d
	          ON CONFLICT (property_id, day) DO UPDATE
	          SET status = 'available', price_cents = NULL, note = NULL, updated_on = NOW()`
	result, err := r.db.ExecContext(ctx, query, propertyID, from, to)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (r *availabilityRepository) IsRangeFree(ctx context.Context, propertyID int32, from, to time.Time) (bool, error) {
	// Half-open: the checkout day itself is not required to be free. Days
	// with no row are implicitly available, so only stored non-available
	// rows can make the range busy.
	query := `SELECT NOT EXISTS (
	            SELECT 1 FROM availability_days
	            WHERE property_id = $1 AND day >= $2 AND day < $3 AND status <> 'available'
	          )`
	var free bool
	err := r.db.QueryRowContext(ctx, query, propertyID, from, to).Scan(&free)
	return free, err
}

func (r *availabilityRepository) SetDayPrice(ctx context.Context, propertyID int32, day time.Time, priceCents int64) error {
	query := `INSERT INTO availability_days (property_id, day, status, price_cents, created_on, updated_on)
	          VALUES ($1, $2, 'available', $3, NOW(), NOW())
	          ON CONFLICT (property_id, day) DO UPDATE
	          SET price_cents = EXCLUDED.price_cents, updated_on = NOW()`
	_, err := r.db.ExecContext(ctx, query, propertyID, day, priceCents)
	return err
}
