package domain

import "time"

type ListingType string

const (
	ListingTypeSale       ListingType = "sale"
	ListingTypeRent       ListingType = "rent"
	ListingTypeAirbnb     ListingType = "airbnb"
	ListingTypeCommercial ListingType = "commercial"
)

type RateUnit string

const (
	RateUnitNight RateUnit = "night"
	RateUnitDay   RateUnit = "day"
	RateUnitWeek  RateUnit = "week"
	RateUnitMonth RateUnit = "month"
)

// RateSchedule is the single default rate carried by a listing. The unit is
// fixed by the listing type (airbnb listings price per night, long-term
// rentals per month), so a property never carries parallel optional price
// fields that are meaningless for its type.
type RateSchedule struct {
	Unit        RateUnit `json:"unit"`
	AmountCents int64    `json:"amount_cents"`
}

// PerNightCents normalizes the schedule to a per-night figure. Weekly and
// monthly rates are prorated with the usual 7/30 day conventions.
func (r RateSchedule) PerNightCents() int64 {
	switch r.Unit {
	case RateUnitWeek:
		return r.AmountCents / 7
	case RateUnitMonth:
		return r.AmountCents / 30
	default:
		return r.AmountCents
	}
}

// DefaultRateUnit returns the rate unit a listing type prices in.
func DefaultRateUnit(lt ListingType) RateUnit {
	switch lt {
	case ListingTypeAirbnb:
		return RateUnitNight
	case ListingTypeRent, ListingTypeCommercial:
		return RateUnitMonth
	default:
		return RateUnitDay
	}
}

type Property struct {
	ID          int32        `json:"id"`
	OwnerID     int32        `json:"owner_id"`
	Title       string       `json:"title"`
	ListingType ListingType  `json:"listing_type"`
	Rate        RateSchedule `json:"rate"`
	Active      bool         `json:"active"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

// Bookable reports whether the listing participates in the availability
// calendar and booking flow. Sale and commercial listings do not.
func (p *Property) Bookable() bool {
	return p.Active && (p.ListingType == ListingTypeAirbnb || p.ListingType == ListingTypeRent)
}
