package http

import (
	"encoding/json"
	"net/http"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/service"
	"stayhub-backend/internal/utils"

	"github.com/go-playground/validator/v10"
)

type CalendarHandler struct {
	calendarSvc        service.CalendarService
	validate           *validator.Validate
	defaultHorizonDays int
}

func NewCalendarHandler(calendarSvc service.CalendarService, validate *validator.Validate, defaultHorizonDays int) *CalendarHandler {
	return &CalendarHandler{
		calendarSvc:        calendarSvc,
		validate:           validate,
		defaultHorizonDays: defaultHorizonDays,
	}
}

// GetCalendar handles GET /api/properties/{id}/calendar.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	from, to, err := queryDateRange(r, "from", "to")
	if err != nil {
		writeError(w, err)
		return
	}

	days, err := h.calendarSvc.GetCalendar(r.Context(), propertyID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

type regenerateRequest struct {
	HorizonDays int `json:"horizon_days" validate:"gte=0,lte=730"`
}

// RegenerateCalendar handles POST /api/admin/properties/{id}/calendar/regenerate.
// An omitted or zero horizon falls back to the configured default.
func (h *CalendarHandler) RegenerateCalendar(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload regenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
			return
		}
	}
	horizon := payload.HorizonDays
	if horizon == 0 {
		horizon = h.defaultHorizonDays
	}

	report, err := h.calendarSvc.RegenerateCalendar(r.Context(), propertyID, horizon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type blockRangeRequest struct {
	From   string `json:"from" validate:"required"`
	To     string `json:"to" validate:"required"`
	Status string `json:"status" validate:"required,oneof=blocked maintenance"`
	Reason string `json:"reason"`
}

// BlockRange handles POST /api/admin/properties/{id}/calendar/block.
func (h *CalendarHandler) BlockRange(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload blockRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	from, err := utils.ParseDate(payload.From)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "from", Reason: err.Error()})
		return
	}
	to, err := utils.ParseDate(payload.To)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "to", Reason: err.Error()})
		return
	}

	if err := h.calendarSvc.BlockRange(r.Context(), propertyID, from, to, domain.DayStatus(payload.Status), payload.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type dayPriceRequest struct {
	Day        string `json:"day" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
}

// SetDayPrice handles PUT /api/admin/properties/{id}/calendar/price.
func (h *CalendarHandler) SetDayPrice(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload dayPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	day, err := utils.ParseDate(payload.Day)
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "day", Reason: err.Error()})
		return
	}

	if err := h.calendarSvc.SetDayPrice(r.Context(), propertyID, day, payload.PriceCents); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
