package service

import (
	"context"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/repository"
)

// reconciler propagates booking lifecycle transitions into the denormalized
// availability calendar. It is the only writer of booking-derived day state;
// the calendar generator delegates to it when healing drift.
type reconciler struct {
	availabilityRepo repository.AvailabilityRepository
}

// blockBooking marks every night of the stay as booked, tagged with the
// booking reference. The range is [CheckIn, CheckOut): the checkout day is
// the next guest's check-in day and stays free. Day prices are preserved.
func (rc *reconciler) blockBooking(ctx context.Context, b *domain.Booking) (int, error) {
	lastNight := b.CheckOut.AddDate(0, 0, -1)
	if lastNight.Before(b.CheckIn) {
		return 0, nil
	}
	note := &domain.DayNote{BookingID: b.ID, GuestName: b.Guest.Name}
	return rc.availabilityRepo.UpsertRange(ctx, b.PropertyID, b.CheckIn, lastNight, domain.DayStatusBooked, nil, note)
}

// releaseBooking resets the booking's whole range, checkout day included, to
// available at the listing default price. This is a reset, not a selective
// unblock: a manual block that happens to sit inside the cancelled range is
// cleared with it. Known loss-of-information behavior, kept deliberately.
func (rc *reconciler) releaseBooking(ctx context.Context, b *domain.Booking) (int, error) {
	return rc.availabilityRepo.ResetRange(ctx, b.PropertyID, b.CheckIn, b.CheckOut)
}
