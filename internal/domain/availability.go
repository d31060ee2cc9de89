package domain

import "time"

type DayStatus string

const (
	DayStatusAvailable   DayStatus = "available"
	DayStatusBooked      DayStatus = "booked"
	DayStatusBlocked     DayStatus = "blocked"
	DayStatusMaintenance DayStatus = "maintenance"
)

// DayNote is the structured annotation attached to a calendar day. Calendar
// days reference bookings by id only; there is no hard foreign key, because a
// day may be blocked for reasons that have no booking (maintenance, a manual
// host block).
type DayNote struct {
	BookingID int32  `json:"booking_id,omitempty"`
	GuestName string `json:"guest_name,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityDay is one materialized calendar day for a property. At most
// one row exists per (property, day); days with no row are implicitly
// available at the listing's default rate. PriceCents nil means "use the
// listing default".
type AvailabilityDay struct {
	PropertyID int32     `json:"property_id"`
	Day        time.Time `json:"day"`
	Status     DayStatus `json:"status"`
	PriceCents *int64    `json:"price_cents,omitempty"`
	Note       *DayNote  `json:"note,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// CalendarReport summarizes one property's calendar regeneration.
type CalendarReport struct {
	PropertyID int32 `json:"property_id"`
	Created    int   `json:"created"`
	Updated    int   `json:"updated"`
}

// BatchCalendarReport aggregates a whole generator run. A failed property is
// counted and named but never aborts the batch.
type BatchCalendarReport struct {
	Properties int     `json:"properties"`
	Created    int     `json:"created"`
	Updated    int     `json:"updated"`
	Failed     []int32 `json:"failed,omitempty"`
}
