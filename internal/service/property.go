package service

import (
	"context"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/repository"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

func (s *propertyService) AddProperty(ctx context.Context, p *domain.Property) error {
	if p.Title == "" {
		return &domain.ValidationError{Field: "title", Reason: "required"}
	}
	switch p.ListingType {
	case domain.ListingTypeSale, domain.ListingTypeRent, domain.ListingTypeAirbnb, domain.ListingTypeCommercial:
	default:
		return &domain.ValidationError{Field: "listing_type", Reason: "unknown listing type"}
	}
	if p.Rate.AmountCents < 0 {
		return &domain.ValidationError{Field: "rate.amount_cents", Reason: "must not be negative"}
	}
	if p.Rate.Unit == "" {
		p.Rate.Unit = domain.DefaultRateUnit(p.ListingType)
	}
	return s.propertyRepo.Create(ctx, p)
}

func (s *propertyService) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) UpdateRate(ctx context.Context, id int32, rate domain.RateSchedule) error {
	if rate.AmountCents < 0 {
		return &domain.ValidationError{Field: "rate.amount_cents", Reason: "must not be negative"}
	}
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rate.Unit == "" {
		rate.Unit = domain.DefaultRateUnit(property.ListingType)
	}
	return s.propertyRepo.UpdateRate(ctx, id, rate)
}
