package service

import (
	"context"
	"fmt"
	"time"

	"stayhub-backend/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error {
	subject := fmt.Sprintf("Booking confirmed — %s", propertyTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is confirmed.\n\nCheck-in: %s\nCheck-out: %s\nTotal: %.2f\n\nBest regards,\nThe StayHub Team",
		guestName, propertyTitle, utils.FormatDate(checkIn), utils.FormatDate(checkOut), float64(totalCents)/100,
	)
	return s.send(guestEmail, guestName, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error {
	subject := fmt.Sprintf("Booking cancelled — %s", propertyTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s starting %s has been cancelled.\n\nBest regards,\nThe StayHub Team",
		guestName, propertyTitle, utils.FormatDate(checkIn),
	)
	return s.send(guestEmail, guestName, subject, body)
}

func (s *emailService) SendCheckInReminder(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error {
	subject := fmt.Sprintf("Your stay at %s starts soon", propertyTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your stay at %s begins on %s. We look forward to hosting you.\n\nBest regards,\nThe StayHub Team",
		guestName, propertyTitle, utils.FormatDate(checkIn),
	)
	return s.send(guestEmail, guestName, subject, body)
}
