package service

import (
	"context"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/logger"
	"stayhub-backend/internal/repository"
	"stayhub-backend/internal/utils"
)

type calendarService struct {
	availabilityRepo repository.AvailabilityRepository
	bookingRepo      repository.BookingRepository
	propertyRepo     repository.PropertyRepository
	rec              reconciler
}

func NewCalendarService(
	availabilityRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
) CalendarService {
	return &calendarService{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		propertyRepo:     propertyRepo,
		rec:              reconciler{availabilityRepo: availabilityRepo},
	}
}

func (s *calendarService) GetCalendar(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityDay, error) {
	if to.Before(from) {
		return nil, &domain.ValidationError{Field: "to", Reason: "must not precede from"}
	}
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	stored, err := s.availabilityRepo.GetRange(ctx, propertyID, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load calendar", Err: err}
	}
	byDay := make(map[string]domain.AvailabilityDay, len(stored))
	for _, d := range stored {
		byDay[utils.FormatDate(d.Day)] = d
	}

	// Dates without a stored row read as available at the listing default.
	var days []domain.AvailabilityDay
	utils.EachDay(from, to, func(day time.Time) {
		if d, ok := byDay[utils.FormatDate(day)]; ok {
			days = append(days, d)
			return
		}
		days = append(days, domain.AvailabilityDay{
			PropertyID: propertyID,
			Day:        day,
			Status:     domain.DayStatusAvailable,
		})
	})
	return days, nil
}

func (s *calendarService) BlockRange(ctx context.Context, propertyID int32, from, to time.Time, status domain.DayStatus, reason string) error {
	if status != domain.DayStatusBlocked && status != domain.DayStatusMaintenance {
		return &domain.ValidationError{Field: "status", Reason: "must be blocked or maintenance"}
	}
	if to.Before(from) {
		return &domain.ValidationError{Field: "to", Reason: "must not precede from"}
	}
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return err
	}

	// Manual blocks must not stomp nights a guest has already paid for.
	overlaps, err := s.bookingRepo.Overlaps(ctx, propertyID, from, to.AddDate(0, 0, 1), 0)
	if err != nil {
		return &domain.PersistenceError{Op: "booking overlap check", Err: err}
	}
	if overlaps {
		return domain.ErrConflict
	}

	note := &domain.DayNote{Reason: reason}
	_, err = s.availabilityRepo.UpsertRange(ctx, propertyID, from, to, status, nil, note)
	if err != nil {
		return &domain.PersistenceError{Op: "block range", Err: err}
	}
	return nil
}

func (s *calendarService) SetDayPrice(ctx context.Context, propertyID int32, day time.Time, priceCents int64) error {
	if priceCents <= 0 {
		return &domain.ValidationError{Field: "price_cents", Reason: "must be positive"}
	}
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return err
	}
	if err := s.availabilityRepo.SetDayPrice(ctx, propertyID, utils.DateOnly(day), priceCents); err != nil {
		return &domain.PersistenceError{Op: "set day price", Err: err}
	}
	return nil
}

// RegenerateCalendar is a non-destructive merge, not a rewrite. Missing days
// are seeded available at the default rate; existing days keep their status
// and price, so re-running the generator never un-blocks a booked day. The
// generator then re-applies blocks for every confirmed booking in the
// window, healing any drift left by a failed reconciliation.
func (s *calendarService) RegenerateCalendar(ctx context.Context, propertyID int32, horizonDays int) (*domain.CalendarReport, error) {
	if horizonDays <= 0 {
		return nil, &domain.ValidationError{Field: "horizon_days", Reason: "must be positive"}
	}
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.Bookable() {
		return nil, &domain.ValidationError{Field: "property_id", Reason: "listing has no availability calendar"}
	}

	from := utils.Today()
	end := from.AddDate(0, 0, horizonDays) // horizon is [from, end)

	created, err := s.availabilityRepo.SeedRange(ctx, propertyID, from, end.AddDate(0, 0, -1))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "seed calendar horizon", Err: err}
	}

	bookings, err := s.bookingRepo.ListConfirmedInWindow(ctx, propertyID, from, end)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookings for re-sync", Err: err}
	}
	updated := 0
	for i := range bookings {
		n, err := s.rec.blockBooking(ctx, &bookings[i])
		if err != nil {
			return nil, &domain.PersistenceError{Op: "re-apply booking block", Err: err}
		}
		updated += n
	}

	return &domain.CalendarReport{PropertyID: propertyID, Created: created, Updated: updated}, nil
}

func (s *calendarService) RegenerateAll(ctx context.Context, horizonDays int) (*domain.BatchCalendarReport, error) {
	properties, err := s.propertyRepo.ListBookable(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list bookable properties", Err: err}
	}

	batch := &domain.BatchCalendarReport{Properties: len(properties)}
	for _, p := range properties {
		report, err := s.RegenerateCalendar(ctx, p.ID, horizonDays)
		if err != nil {
			// One property failing must not abort the rest of the batch.
			logger.Error("Calendar generation failed for property",
				"property_id", p.ID, "error", err)
			batch.Failed = append(batch.Failed, p.ID)
			continue
		}
		batch.Created += report.Created
		batch.Updated += report.Updated
	}
	return batch, nil
}
