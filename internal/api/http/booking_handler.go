package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/service"
	"stayhub-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	validate   *validator.Validate
}

func NewBookingHandler(bookingSvc service.BookingService, validate *validator.Validate) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, validate: validate}
}

type guestPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type createBookingRequest struct {
	PropertyID int32        `json:"property_id" validate:"required,gt=0"`
	CheckIn    string       `json:"check_in" validate:"required"`
	CheckOut   string       `json:"check_out" validate:"required"`
	Guest      guestPayload `json:"guest" validate:"required"`
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var payload createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	checkIn, err := utils.ParseDate(payload.CheckIn)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "check_in", Reason: err.Error()})
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOut)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "check_out", Reason: err.Error()})
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), &service.BookingRequest{
		PropertyID: payload.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guest: domain.Guest{
			Name:  payload.Guest.Name,
			Email: payload.Guest.Email,
			Phone: payload.Guest.Phone,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /api/properties/{id}/bookings.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	bookings, total, err := h.bookingSvc.ListBookings(r.Context(), propertyID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    total,
	})
}

// CheckAvailability handles GET /api/properties/{id}/availability.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	checkIn, checkOut, err := queryDateRange(r, "check_in", "check_out")
	if err != nil {
		writeError(w, err)
		return
	}

	available, err := h.bookingSvc.CheckAvailability(r.Context(), propertyID, checkIn, checkOut, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// QuoteTotal handles GET /api/properties/{id}/quote.
func (h *BookingHandler) QuoteTotal(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	checkIn, checkOut, err := queryDateRange(r, "check_in", "check_out")
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := h.bookingSvc.QuoteTotal(r.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_cents": total,
		"nights":      utils.DaysBetween(checkIn, checkOut),
	})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return int32(id), nil
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

func queryDateRange(r *http.Request, fromName, toName string) (time.Time, time.Time, error) {
	from, err := utils.ParseDate(r.URL.Query().Get(fromName))
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: fromName, Reason: err.Error()}
	}
	to, err := utils.ParseDate(r.URL.Query().Get(toName))
	if err != nil {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: toName, Reason: err.Error()}
	}
	return from, to, nil
}
