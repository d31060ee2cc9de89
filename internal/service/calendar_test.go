package service_test

import (
	"context"
	"testing"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/service"
	"stayhub-backend/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestCalendarService_GetCalendar(t *testing.T) {
	ctx := context.Background()

	cal := newFakeCalendar()
	propRepo := new(MockPropertyRepo)
	propRepo.On("GetByID", ctx, int32(7)).Return(testProperty(), nil)
	propRepo.On("GetByID", ctx, int32(404)).Return(nil, domain.ErrNotFound)

	_, err := cal.UpsertRange(ctx, 7, date("2025-09-02"), date("2025-09-02"),
		domain.DayStatusBooked, nil, &domain.DayNote{BookingID: 42, GuestName: "Amina Diallo"})
	assert.NoError(t, err)

	svc := service.NewCalendarService(cal, &memBookings{}, propRepo)

	t.Run("FillsImplicitDays", func(t *testing.T) {
		days, err := svc.GetCalendar(ctx, 7, date("2025-09-01"), date("2025-09-03"))
		assert.NoError(t, err)
		assert.Len(t, days, 3)

		// 09-01 and 09-03 have no stored row and read as available.
		assert.Equal(t, domain.DayStatusAvailable, days[0].Status)
		assert.Equal(t, domain.DayStatusBooked, days[1].Status)
		assert.Equal(t, int32(42), days[1].Note.BookingID)
		assert.Equal(t, domain.DayStatusAvailable, days[2].Status)
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		_, err := svc.GetCalendar(ctx, 404, date("2025-09-01"), date("2025-09-03"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("InvertedRange", func(t *testing.T) {
		_, err := svc.GetCalendar(ctx, 7, date("2025-09-03"), date("2025-09-01"))
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestCalendarService_BlockRange(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cal := newFakeCalendar()
		propRepo := new(MockPropertyRepo)
		propRepo.On("GetByID", ctx, int32(7)).Return(testProperty(), nil)

		svc := service.NewCalendarService(cal, &memBookings{}, propRepo)

		err := svc.BlockRange(ctx, 7, date("2025-10-01"), date("2025-10-03"), domain.DayStatusMaintenance, "repainting")
		assert.NoError(t, err)

		for _, day := range []string{"2025-10-01", "2025-10-02", "2025-10-03"} {
			d, ok := cal.day(7, date(day))
			assert.True(t, ok, day)
			assert.Equal(t, domain.DayStatusMaintenance, d.Status, day)
			assert.Equal(t, "repainting", d.Note.Reason, day)
		}
	})

	t.Run("RefusesBookedRange", func(t *testing.T) {
		bookings := &memBookings{}
		err := bookings.Create(ctx, &domain.Booking{
			PropertyID: 7,
			CheckIn:    date("2025-10-02"),
			CheckOut:   date("2025-10-05"),
			Status:     domain.BookingStatusConfirmed,
		})
		assert.NoError(t, err)
		propRepo := new(MockPropertyRepo)
		propRepo.On("GetByID", ctx, int32(7)).Return(testProperty(), nil)

		svc := service.NewCalendarService(newFakeCalendar(), bookings, propRepo)

		err = svc.BlockRange(ctx, 7, date("2025-10-01"), date("2025-10-02"), domain.DayStatusBlocked, "owner stay")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("RejectsNonBlockingStatus", func(t *testing.T) {
		svc := service.NewCalendarService(newFakeCalendar(), &memBookings{}, new(MockPropertyRepo))

		err := svc.BlockRange(ctx, 7, date("2025-10-01"), date("2025-10-03"), domain.DayStatusAvailable, "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestCalendarService_SetDayPrice(t *testing.T) {
	ctx := context.Background()

	cal := newFakeCalendar()
	propRepo := new(MockPropertyRepo)
	propRepo.On("GetByID", ctx, int32(7)).Return(testProperty(), nil)
	svc := service.NewCalendarService(cal, &memBookings{}, propRepo)

	assert.NoError(t, svc.SetDayPrice(ctx, 7, date("2025-09-02"), 5500))
	d, ok := cal.day(7, date("2025-09-02"))
	assert.True(t, ok)
	assert.Equal(t, int64(5500), *d.PriceCents)

	err := svc.SetDayPrice(ctx, 7, date("2025-09-02"), 0)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCalendarService_RegenerateCalendar(t *testing.T) {
	ctx := context.Background()
	today := utils.Today()

	cal := newFakeCalendar()
	bookings := &memBookings{}
	propRepo := new(MockPropertyRepo)
	propRepo.On("GetByID", ctx, int32(7)).Return(testProperty(), nil)

	// A confirmed stay inside the horizon plus a custom price the merge must
	// not destroy.
	checkIn := today.AddDate(0, 0, 5)
	checkOut := today.AddDate(0, 0, 8)
	err := bookings.Create(ctx, &domain.Booking{
		PropertyID: 7,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guest:      domain.Guest{Name: "Amina Diallo", Email: "amina@example.com"},
		Status:     domain.BookingStatusConfirmed,
	})
	assert.NoError(t, err)
	assert.NoError(t, cal.SetDayPrice(ctx, 7, today.AddDate(0, 0, 2), 9900))

	svc := service.NewCalendarService(cal, bookings, propRepo)

	report, err := svc.RegenerateCalendar(ctx, 7, 30)
	assert.NoError(t, err)
	// The priced day already existed, the other 29 get seeded; the 3 nights
	// of the stay get re-marked.
	assert.Equal(t, 29, report.Created)
	assert.Equal(t, 3, report.Updated)

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		day, ok := cal.day(7, d)
		assert.True(t, ok)
		assert.Equal(t, domain.DayStatusBooked, day.Status)
	}
	free, ok := cal.day(7, checkOut)
	assert.True(t, ok)
	assert.Equal(t, domain.DayStatusAvailable, free.Status)

	priced, _ := cal.day(7, today.AddDate(0, 0, 2))
	assert.Equal(t, int64(9900), *priced.PriceCents)

	t.Run("Idempotent", func(t *testing.T) {
		report, err := svc.RegenerateCalendar(ctx, 7, 30)
		assert.NoError(t, err)
		assert.Equal(t, 0, report.Created)

		day, _ := cal.day(7, checkIn)
		assert.Equal(t, domain.DayStatusBooked, day.Status)
		priced, _ := cal.day(7, today.AddDate(0, 0, 2))
		assert.Equal(t, int64(9900), *priced.PriceCents)
	})

	t.Run("HealsDrift", func(t *testing.T) {
		// Simulate a reconciliation that never landed: a booked night sits
		// available on the calendar.
		_, err := cal.ResetRange(ctx, 7, checkIn, checkIn)
		assert.NoError(t, err)

		_, err = svc.RegenerateCalendar(ctx, 7, 30)
		assert.NoError(t, err)

		day, _ := cal.day(7, checkIn)
		assert.Equal(t, domain.DayStatusBooked, day.Status)
	})

	t.Run("InvalidHorizon", func(t *testing.T) {
		_, err := svc.RegenerateCalendar(ctx, 7, 0)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("NonBookableListing", func(t *testing.T) {
		propRepo.On("GetByID", ctx, int32(8)).Return(&domain.Property{
			ID:          8,
			ListingType: domain.ListingTypeCommercial,
			Active:      true,
		}, nil)

		_, err := svc.RegenerateCalendar(ctx, 8, 30)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestCalendarService_RegenerateAll(t *testing.T) {
	ctx := context.Background()

	healthy := testProperty()
	broken := testProperty()
	broken.ID = 11

	cal := newFakeCalendar()
	cal.failSeed[11] = true

	propRepo := new(MockPropertyRepo)
	propRepo.On("ListBookable", ctx).Return([]domain.Property{*healthy, *broken}, nil)
	propRepo.On("GetByID", ctx, int32(7)).Return(healthy, nil)
	propRepo.On("GetByID", ctx, int32(11)).Return(broken, nil)

	svc := service.NewCalendarService(cal, &memBookings{}, propRepo)

	batch, err := svc.RegenerateAll(ctx, 14)
	assert.NoError(t, err)
	assert.Equal(t, 2, batch.Properties)
	assert.Equal(t, 14, batch.Created)
	assert.Equal(t, []int32{11}, batch.Failed)

	// The failing property did not stop the healthy one from being seeded.
	d, ok := cal.day(7, utils.Today())
	assert.True(t, ok)
	assert.Equal(t, domain.DayStatusAvailable, d.Status)
}
