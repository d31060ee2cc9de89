package http

import (
	"net/http"

	"stayhub-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles the API handlers for router construction.
type Handlers struct {
	Booking      *BookingHandler
	Calendar     *CalendarHandler
	Property     *PropertyHandler
	Notification *NotificationHandler
}

// NewRouter wires all routes. Guest-facing booking operations are public
// (the platform fronting this service owns guest sessions); calendar
// administration sits behind the admin token.
func NewRouter(h *Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public booking surface
	api.HandleFunc("/properties/{id:[0-9]+}", h.Property.GetProperty).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id:[0-9]+}/availability", h.Booking.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id:[0-9]+}/quote", h.Booking.QuoteTotal).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id:[0-9]+}/calendar", h.Calendar.GetCalendar).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.Booking.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.GetBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Booking.CancelBooking).Methods(http.MethodPost)

	// Admin surface
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(Authenticate(tm), RequireAdmin)
	admin.HandleFunc("/properties", h.Property.CreateProperty).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id:[0-9]+}/rate", h.Property.UpdateRate).Methods(http.MethodPut)
	admin.HandleFunc("/properties/{id:[0-9]+}/bookings", h.Booking.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{id:[0-9]+}/calendar/regenerate", h.Calendar.RegenerateCalendar).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id:[0-9]+}/calendar/block", h.Calendar.BlockRange).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id:[0-9]+}/calendar/price", h.Calendar.SetDayPrice).Methods(http.MethodPut)
	admin.HandleFunc("/notifications", h.Notification.ListNotifications).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkNotificationRead).Methods(http.MethodPost)

	return r
}
