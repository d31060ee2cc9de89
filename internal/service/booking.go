package service

import (
	"context"
	"fmt"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/logger"
	"stayhub-backend/internal/repository"
	"stayhub-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo      repository.BookingRepository
	availabilityRepo repository.AvailabilityRepository
	propertyRepo     repository.PropertyRepository
	noteRepo         repository.NotificationRepository
	emailSvc         EmailService
	rec              reconciler
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	availabilityRepo repository.AvailabilityRepository,
	propertyRepo repository.PropertyRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		propertyRepo:     propertyRepo,
		noteRepo:         noteRepo,
		emailSvc:         emailSvc,
		rec:              reconciler{availabilityRepo: availabilityRepo},
	}
}

// CheckAvailability consults the calendar first because it is the cheap
// denormalized signal, then the booking table, which is authoritative and is
// never skipped: a date range whose calendar was not generated yet reads as
// free, while a confirmed booking may still cover it. Short-circuits on the
// first failing check.
func (s *bookingService) CheckAvailability(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeBookingID int32) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, &domain.ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	free, err := s.availabilityRepo.IsRangeFree(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return false, &domain.PersistenceError{Op: "calendar check", Err: err}
	}
	if !free {
		return false, nil
	}
	overlaps, err := s.bookingRepo.Overlaps(ctx, propertyID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return false, &domain.PersistenceError{Op: "booking overlap check", Err: err}
	}
	return !overlaps, nil
}

func (s *bookingService) QuoteTotal(ctx context.Context, propertyID int32, checkIn, checkOut time.Time) (int64, error) {
	if !checkOut.After(checkIn) {
		return 0, &domain.ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	return s.priceStay(ctx, property, checkIn, checkOut)
}

// priceStay sums one price per night over [checkIn, checkOut): the day's
// stored override when present, the listing default otherwise. A range with
// no calendar rows prices entirely at the default rate.
func (s *bookingService) priceStay(ctx context.Context, property *domain.Property, checkIn, checkOut time.Time) (int64, error) {
	lastNight := checkOut.AddDate(0, 0, -1)
	days, err := s.availabilityRepo.GetRange(ctx, property.ID, checkIn, lastNight)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "load calendar prices", Err: err}
	}
	overrides := make(map[string]int64, len(days))
	for _, d := range days {
		if d.PriceCents != nil {
			overrides[utils.FormatDate(d.Day)] = *d.PriceCents
		}
	}

	defaultRate := property.Rate.PerNightCents()
	var total int64
	utils.EachNight(checkIn, checkOut, func(day time.Time) {
		if price, ok := overrides[utils.FormatDate(day)]; ok {
			total += price
		} else {
			total += defaultRate
		}
	})
	return total, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *BookingRequest) (*domain.Booking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.Bookable() {
		return nil, &domain.ValidationError{Field: "property_id", Reason: "listing does not accept bookings"}
	}

	// Advisory pre-check for a fast, readable rejection. The repository
	// re-verifies under the property lock, which is what actually closes
	// the race window between two concurrent requests.
	available, err := s.CheckAvailability(ctx, req.PropertyID, req.CheckIn, req.CheckOut, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrConflict
	}

	total, err := s.priceStay(ctx, property, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PropertyID: req.PropertyID,
		Reference:  uuid.NewString(),
		CheckIn:    utils.DateOnly(req.CheckIn),
		CheckOut:   utils.DateOnly(req.CheckOut),
		Guest:      req.Guest,
		TotalCents: total,
		Status:     domain.BookingStatusConfirmed,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if _, err := s.rec.blockBooking(ctx, booking); err != nil {
		// The booking row is committed and authoritative; the next
		// generator run re-applies the block from it.
		logger.Error("Failed to block calendar days for booking",
			"booking_id", booking.ID, "property_id", booking.PropertyID, "error", err)
	}

	s.notifyBookingCreated(property, booking)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.rec.releaseBooking(ctx, booking); err != nil {
		logger.Error("Failed to release calendar days for cancelled booking",
			"booking_id", booking.ID, "property_id", booking.PropertyID, "error", err)
	}

	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		logger.Warn("Cancelled booking references unknown property",
			"booking_id", booking.ID, "property_id", booking.PropertyID, "error", err)
		return booking, nil
	}

	s.notifyBookingCancelled(property, booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.ListByProperty(ctx, propertyID, status, page, pageSize)
}

// notifyBookingCreated emits the guest confirmation email and a host
// notification. Both are fire-and-forget: a delivery failure is logged and
// never fails the booking that triggered it.
func (s *bookingService) notifyBookingCreated(property *domain.Property, b *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.emailSvc.SendBookingConfirmation(ctx, b.Guest.Email, b.Guest.Name,
			property.Title, b.CheckIn, b.CheckOut, b.TotalCents); err != nil {
			logger.Error("Failed to send booking confirmation", "booking_id", b.ID, "error", err)
		}

		notif := &domain.Notification{
			UserID:  property.OwnerID,
			Title:   "New Booking",
			Message: fmt.Sprintf("%s booked %s for %d nights", b.Guest.Name, property.Title, b.Nights()),
			Attributes: map[string]string{
				"type":       "BOOKING_CREATED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, notif); err != nil {
			logger.Error("Failed to create host notification", "booking_id", b.ID, "error", err)
		}
	}()
}

func (s *bookingService) notifyBookingCancelled(property *domain.Property, b *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.emailSvc.SendBookingCancellation(ctx, b.Guest.Email, b.Guest.Name,
			property.Title, b.CheckIn); err != nil {
			logger.Error("Failed to send cancellation email", "booking_id", b.ID, "error", err)
		}

		notif := &domain.Notification{
			UserID:  property.OwnerID,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("Booking by %s for %s was cancelled", b.Guest.Name, property.Title),
			Attributes: map[string]string{
				"type":       "BOOKING_CANCELLED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, notif); err != nil {
			logger.Error("Failed to create host notification", "booking_id", b.ID, "error", err)
		}
	}()
}

func validateRequest(req *BookingRequest) error {
	if req.PropertyID <= 0 {
		return &domain.ValidationError{Field: "property_id", Reason: "required"}
	}
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return &domain.ValidationError{Field: "check_in", Reason: "check_in and check_out are required"}
	}
	if !req.CheckOut.After(req.CheckIn) {
		return &domain.ValidationError{Field: "check_out", Reason: "must be after check_in"}
	}
	if req.Guest.Name == "" {
		return &domain.ValidationError{Field: "guest.name", Reason: "required"}
	}
	if req.Guest.Email == "" {
		return &domain.ValidationError{Field: "guest.email", Reason: "required"}
	}
	return nil
}
