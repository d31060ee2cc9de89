package repository

import (
	"context"
	"time"

	"stayhub-backend/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	// ListBookable returns every active listing that participates in the
	// availability calendar (airbnb and long-term rentals).
	ListBookable(ctx context.Context) ([]domain.Property, error)
	UpdateRate(ctx context.Context, id int32, rate domain.RateSchedule) error
}

// AvailabilityRepository owns the per-day calendar rows. Range writes are
// inclusive of both endpoints; IsRangeFree follows the half-open booking
// convention where the checkout day need not be free.
type AvailabilityRepository interface {
	// GetRange returns stored rows for the inclusive range [from, to],
	// ordered by day. Dates without a row are simply absent: callers treat
	// them as implicitly available at the listing default rate.
	GetRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityDay, error)

	// SeedRange inserts an available row for every date in [from, to] that
	// has none, leaving existing rows untouched, and returns the number of
	// rows created. Re-running it is a no-op.
	SeedRange(ctx context.Context, propertyID int32, from, to time.Time) (int, error)

	// UpsertRange creates or overwrites every date in [from, to] with the
	// given status and note. A nil price keeps each day's stored price;
	// otherwise the price is overwritten. Idempotent. Returns rows written.
	UpsertRange(ctx context.Context, propertyID int32, from, to time.Time, status domain.DayStatus, priceCents *int64, note *domain.DayNote) (int, error)

	// ResetRange restores every date in [from, to] to available at the
	// listing default price (price and note cleared). Returns rows written.
	ResetRange(ctx context.Context, propertyID int32, from, to time.Time) (int, error)

	// IsRangeFree reports whether every stored day in the half-open range
	// [from, to) has status available. Missing days count as free.
	IsRangeFree(ctx context.Context, propertyID int32, from, to time.Time) (bool, error)

	// SetDayPrice stores a custom price override for a single day, seeding
	// the row as available if it does not exist yet.
	SetDayPrice(ctx context.Context, propertyID int32, day time.Time, priceCents int64) error
}

// BookingRepository owns booking rows and the authoritative non-overlap
// guarantee.
type BookingRepository interface {
	// Create inserts a confirmed booking. It re-checks overlap inside a
	// transaction that locks the property row, so two racing requests for
	// intersecting ranges cannot both commit; the loser gets
	// domain.ErrConflict.
	Create(ctx context.Context, b *domain.Booking) error

	GetByID(ctx context.Context, id int32) (*domain.Booking, error)

	// Overlaps reports whether a confirmed, non-deleted booking for the
	// property intersects the half-open range [from, to). excludeID, when
	// non-zero, leaves that booking out of the check.
	Overlaps(ctx context.Context, propertyID int32, from, to time.Time, excludeID int32) (bool, error)

	// Cancel transitions a confirmed booking to cancelled and returns the
	// updated row. domain.ErrNotFound if no such confirmed booking exists.
	Cancel(ctx context.Context, id int32) (*domain.Booking, error)

	ListByProperty(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)

	// ListConfirmedInWindow returns confirmed bookings intersecting
	// [from, to), used by the calendar generator to re-apply blocks.
	ListConfirmedInWindow(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error)

	// ListArrivals returns confirmed bookings checking in on the given day.
	ListArrivals(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
