package service

import (
	"context"
	"time"

	"stayhub-backend/internal/domain"
)

// BookingRequest carries a guest's booking submission.
type BookingRequest struct {
	PropertyID int32
	CheckIn    time.Time
	CheckOut   time.Time
	Guest      domain.Guest
}

type BookingService interface {
	// CheckAvailability is the advisory pre-check consulted by booking
	// forms. Calendar first (cheap, denormalized), booking table second
	// (authoritative, never skipped). The write-time re-check in the
	// repository remains the final word.
	CheckAvailability(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeBookingID int32) (bool, error)

	// QuoteTotal prices a stay: per-night calendar override when set,
	// listing default otherwise, summed over [checkIn, checkOut).
	QuoteTotal(ctx context.Context, propertyID int32, checkIn, checkOut time.Time) (int64, error)

	CreateBooking(ctx context.Context, req *BookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	ListBookings(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type CalendarService interface {
	// GetCalendar returns one entry per date in the inclusive range,
	// filling dates without a stored row as available at the default rate.
	GetCalendar(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityDay, error)

	// BlockRange writes a manual block or maintenance window. Ranges that
	// collide with a confirmed booking are refused.
	BlockRange(ctx context.Context, propertyID int32, from, to time.Time, status domain.DayStatus, reason string) error

	// SetDayPrice stores a per-day price override used by QuoteTotal.
	SetDayPrice(ctx context.Context, propertyID int32, day time.Time, priceCents int64) error

	// RegenerateCalendar materializes the horizon [today, today+horizonDays)
	// for one property without destroying existing day state, then
	// re-applies blocks for every confirmed booking in the window.
	RegenerateCalendar(ctx context.Context, propertyID int32, horizonDays int) (*domain.CalendarReport, error)

	// RegenerateAll runs RegenerateCalendar for every bookable property.
	// A failing property is reported and skipped, never fatal to the batch.
	RegenerateAll(ctx context.Context, horizonDays int) (*domain.BatchCalendarReport, error)
}

type PropertyService interface {
	AddProperty(ctx context.Context, p *domain.Property) error
	GetProperty(ctx context.Context, id int32) (*domain.Property, error)
	UpdateRate(ctx context.Context, id int32, rate domain.RateSchedule) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService is the outbound notification dispatcher. Sends are
// fire-and-forget relative to the booking transaction: failures are logged
// by the caller and never roll back or block a booking write.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error
	SendBookingCancellation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error
	SendCheckInReminder(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error
}
