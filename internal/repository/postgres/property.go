package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (owner_id, title, listing_type, rate_unit, rate_cents, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.ListingType, p.Rate.Unit, p.Rate.AmountCents, p.Active, now, now,
	).Scan(&p.ID)
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	p := &domain.Property{}
	query := `SELECT id, owner_id, title, listing_type, rate_unit, rate_cents, active, created_on, updated_on
	          FROM properties WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.ListingType, &p.Rate.Unit, &p.Rate.AmountCents,
		&p.Active, &p.CreatedOn, &p.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepository) ListBookable(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT id, owner_id, title, listing_type, rate_unit, rate_cents, active, created_on, updated_on
	          FROM properties WHERE active = TRUE AND listing_type IN ('airbnb', 'rent') ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.ListingType, &p.Rate.Unit,
			&p.Rate.AmountCents, &p.Active, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

func (r *propertyRepository) UpdateRate(ctx context.Context, id int32, rate domain.RateSchedule) error {
	query := `UPDATE properties SET rate_unit = $1, rate_cents = $2, updated_on = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, rate.Unit, rate.AmountCents, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
