package jobs

import (
	"context"

	"stayhub-backend/internal/logger"
	"stayhub-backend/internal/utils"
)

// GenerateCalendars extends every bookable property's availability calendar
// to the configured horizon. The merge is non-destructive and per-property
// failures are reported, not fatal, so the nightly run always covers every
// property it can.
func (jr *JobRunner) GenerateCalendars() {
	jr.runWithRecovery("GenerateCalendars", func() {
		ctx := context.Background()
		horizon := jr.config.Calendar.HorizonDays

		report, err := jr.services.Calendar.RegenerateAll(ctx, horizon)
		if err != nil {
			logger.Error("Calendar generation batch failed", "error", err)
			return
		}

		logger.Info("Calendar horizon generated",
			"properties", report.Properties,
			"days_created", report.Created,
			"days_resynced", report.Updated,
			"failed", len(report.Failed))
		for _, id := range report.Failed {
			logger.Warn("Property skipped during calendar generation", "property_id", id)
		}
	})
}

// SendCheckInReminders emails every guest whose stay begins tomorrow.
func (jr *JobRunner) SendCheckInReminders() {
	jr.runWithRecovery("SendCheckInReminders", func() {
		ctx := context.Background()
		tomorrow := utils.Today().AddDate(0, 0, 1)

		arrivals, err := jr.store.BookingRepository.ListArrivals(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list tomorrow's arrivals", "error", err)
			return
		}

		sent := 0
		for _, b := range arrivals {
			property, err := jr.store.PropertyRepository.GetByID(ctx, b.PropertyID)
			if err != nil {
				logger.Warn("Skipping reminder, property lookup failed",
					"booking_id", b.ID, "property_id", b.PropertyID, "error", err)
				continue
			}
			if err := jr.services.Email.SendCheckInReminder(ctx, b.Guest.Email, b.Guest.Name, property.Title, b.CheckIn); err != nil {
				logger.Error("Failed to send check-in reminder", "booking_id", b.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Check-in reminders sent", "arrivals", len(arrivals), "sent", sent)
	})
}
