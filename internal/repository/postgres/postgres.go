package postgres

import (
	"database/sql"

	"stayhub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PropertyRepository
	repository.AvailabilityRepository
	repository.BookingRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		PropertyRepository:     NewPropertyRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		BookingRepository:      NewBookingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
