package http

import (
	"encoding/json"
	"net/http"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

type PropertyHandler struct {
	propertySvc service.PropertyService
	validate    *validator.Validate
}

func NewPropertyHandler(propertySvc service.PropertyService, validate *validator.Validate) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc, validate: validate}
}

type createPropertyRequest struct {
	OwnerID     int32  `json:"owner_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	ListingType string `json:"listing_type" validate:"required,oneof=sale rent airbnb commercial"`
	RateUnit    string `json:"rate_unit" validate:"omitempty,oneof=night day week month"`
	RateCents   int64  `json:"rate_cents" validate:"gte=0"`
}

// CreateProperty handles POST /api/admin/properties.
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var payload createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	property := &domain.Property{
		OwnerID:     payload.OwnerID,
		Title:       payload.Title,
		ListingType: domain.ListingType(payload.ListingType),
		Rate: domain.RateSchedule{
			Unit:        domain.RateUnit(payload.RateUnit),
			AmountCents: payload.RateCents,
		},
		Active: true,
	}
	if err := h.propertySvc.AddProperty(r.Context(), property); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

// GetProperty handles GET /api/properties/{id}.
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	property, err := h.propertySvc.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

type updateRateRequest struct {
	RateUnit  string `json:"rate_unit" validate:"omitempty,oneof=night day week month"`
	RateCents int64  `json:"rate_cents" validate:"required,gt=0"`
}

// UpdateRate handles PUT /api/admin/properties/{id}/rate. Default rates are
// the one property surface this service may write.
func (h *PropertyHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var payload updateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	rate := domain.RateSchedule{
		Unit:        domain.RateUnit(payload.RateUnit),
		AmountCents: payload.RateCents,
	}
	if err := h.propertySvc.UpdateRate(r.Context(), id, rate); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
